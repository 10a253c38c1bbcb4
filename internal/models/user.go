package models

import "time"

// Role classifies a user for authorization purposes. Roles are free-form
// strings chosen at signup; only RoleManager carries extra privileges.
type Role string

// RoleManager is the single privileged role. Users holding it may administer
// other users and attendance records.
const RoleManager Role = "Project Manager"

// IsPrivileged reports whether the role may perform administrative operations.
func (r Role) IsPrivileged() bool {
	return r == RoleManager
}

// User represents an account in the system. Name is the unique identity key.
type User struct {
	ID           int64
	Name         string
	Role         Role
	PasswordHash string
	Email        string
	Phone        string
	Bio          string
	Avatar       string
	ResetToken   string
	// ResetTokenExpiry is epoch milliseconds; zero when no reset is pending.
	// ResetToken and ResetTokenExpiry are always set and cleared together.
	ResetTokenExpiry int64
	CreatedAt        time.Time
}

// HasPendingReset reports whether a password reset has been requested and not
// yet completed.
func (u *User) HasPendingReset() bool {
	return u.ResetToken != "" && u.ResetTokenExpiry > 0
}

// ResetExpired reports whether the pending reset token lapsed before now.
func (u *User) ResetExpired(now time.Time) bool {
	return u.ResetTokenExpiry < now.UnixMilli()
}

// PublicUser is the wire representation of a user with credential material
// and reset fields stripped.
type PublicUser struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public strips the password hash and reset-token fields for API responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Role:      u.Role,
		Email:     u.Email,
		Phone:     u.Phone,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}
