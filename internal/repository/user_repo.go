package repository

import (
	"database/sql"
	"fmt"
	"time"

	"attendly/internal/database"
	"attendly/internal/models"
)

const userColumns = `id, name, role, password_hash, COALESCE(email, ''), COALESCE(phone, ''),
		COALESCE(bio, ''), COALESCE(avatar, ''), COALESCE(reset_token, ''), COALESCE(reset_token_expiry, 0), created_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row interface{ Scan(dest ...interface{}) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Role,
		&user.PasswordHash,
		&user.Email,
		&user.Phone,
		&user.Bio,
		&user.Avatar,
		&user.ResetToken,
		&user.ResetTokenExpiry,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return user, nil
}

// CreateUser inserts a new user into the database
func (r *UserRepository) CreateUser(name string, role models.Role, passwordHash, email, phone, bio string) (*models.User, error) {
	query := `
		INSERT INTO users (name, role, password_hash, email, phone, bio)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, name, string(role), passwordHash, email, phone, bio)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{
		ID:           id,
		Name:         name,
		Role:         role,
		PasswordHash: passwordHash,
		Email:        email,
		Phone:        phone,
		Bio:          bio,
		CreatedAt:    time.Now(),
	}, nil
}

// GetUserByName retrieves a user by name. Returns nil, nil when absent.
func (r *UserRepository) GetUserByName(name string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE name = ?"
	return scanUser(r.db.QueryRow(query, name))
}

// GetUserByEmail retrieves a user by email address. Returns nil, nil when absent.
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ?"
	return scanUser(r.db.QueryRow(query, email))
}

// GetUserByID retrieves a user by ID. Returns nil, nil when absent.
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return scanUser(r.db.QueryRow(query, id))
}

// GetAllUsers retrieves all users, newest first
func (r *UserRepository) GetAllUsers() ([]models.User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY created_at DESC"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// UpdateProfile updates a user's profile fields
func (r *UserRepository) UpdateProfile(id int64, name string, email, phone, bio string) error {
	query := `
		UPDATE users
		SET name = ?, email = ?, phone = ?, bio = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query, name, email, phone, bio, id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// UpdateAvatar stores the path of a user's uploaded avatar
func (r *UserRepository) UpdateAvatar(id int64, avatar string) error {
	query := "UPDATE users SET avatar = ? WHERE id = ?"
	if _, err := r.db.Exec(query, avatar, id); err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	return nil
}

// SetResetToken stores a password-reset token and its expiry on a user,
// replacing any pending token.
func (r *UserRepository) SetResetToken(id int64, token string, expiry int64) error {
	query := "UPDATE users SET reset_token = ?, reset_token_expiry = ? WHERE id = ?"
	if _, err := r.db.Exec(query, token, expiry, id); err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	return nil
}

// CompletePasswordReset replaces the password hash and clears the reset-token
// pair in one statement so a consumed token can never be replayed.
func (r *UserRepository) CompletePasswordReset(id int64, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = ?, reset_token = '', reset_token_expiry = 0
		WHERE id = ?
	`
	if _, err := r.db.Exec(query, passwordHash, id); err != nil {
		return fmt.Errorf("failed to complete password reset: %w", err)
	}
	return nil
}

// DeleteUser deletes a user and all of their attendance entries in one
// transaction so no orphaned entries remain.
func (r *UserRepository) DeleteUser(id int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM attendance WHERE user_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete attendance for user: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM users WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user delete: %w", err)
	}
	return nil
}
