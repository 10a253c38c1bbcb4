package service

import (
	"fmt"

	"attendly/internal/models"
	"attendly/internal/repository"
	"attendly/internal/security"
	"attendly/internal/validation"
)

// UserService handles user administration and profile management
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers returns all users, newest first
func (s *UserService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAllUsers()
}

// GetUser returns a user by ID, or ErrUserNotFound
func (s *UserService) GetUser(id int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// CreateUser creates an account on behalf of an administrator. No session
// token is issued; the new user logs in with the provided password.
func (s *UserService) CreateUser(name, role, password, email, phone, bio string) (*models.User, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateRole(role); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetUserByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.CreateUser(name, models.Role(role), passwordHash, email, phone, bio)
}

// UpdateProfile applies a partial profile update. Zero-value fields keep
// their current value; a name change enforces uniqueness.
func (s *UserService) UpdateProfile(id int64, name, email, phone, bio *string) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if name != nil && *name != user.Name {
		if err := validation.ValidateName(*name); err != nil {
			return nil, err
		}
		existing, err := s.userRepo.GetUserByName(*name)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, ErrUserExists
		}
		user.Name = *name
	}
	if email != nil {
		if err := validation.ValidateEmail(*email); err != nil {
			return nil, err
		}
		user.Email = *email
	}
	if phone != nil {
		user.Phone = *phone
	}
	if bio != nil {
		user.Bio = *bio
	}

	if err := s.userRepo.UpdateProfile(id, user.Name, user.Email, user.Phone, user.Bio); err != nil {
		return nil, err
	}
	return user, nil
}

// SetAvatar stores the new avatar path and returns the previous one so the
// caller can remove the old file best-effort.
func (s *UserService) SetAvatar(id int64, avatar string) (string, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.UpdateAvatar(id, avatar); err != nil {
		return "", err
	}
	return user.Avatar, nil
}

// DeleteUser removes a user and cascades to their attendance entries.
func (s *UserService) DeleteUser(id int64) error {
	return s.userRepo.DeleteUser(id)
}
