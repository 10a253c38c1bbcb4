package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"attendly/internal/models"
	"attendly/internal/repository"
	"attendly/internal/security"
	"attendly/internal/token"
	"attendly/internal/validation"
)

var (
	ErrUserExists          = errors.New("user with that name already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrInvalidResetRequest = errors.New("invalid reset request")
	ErrResetTokenExpired   = errors.New("reset token expired")
)

// AuthService handles signup, login and the password reset flow
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *token.Service
	email    *EmailService
	resetTTL time.Duration
}

// NewAuthService creates a new auth service. email may be a disabled
// EmailService; reset mail is then skipped.
func NewAuthService(userRepo *repository.UserRepository, tokens *token.Service, email *EmailService, resetTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		email:    email,
		resetTTL: resetTTL,
	}
}

// Signup creates a new account and issues a session token for it.
func (s *AuthService) Signup(name, role, password, email, phone, bio string) (*models.User, string, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, "", err
	}
	if err := validation.ValidateRole(role); err != nil {
		return nil, "", err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, "", err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, "", err
	}

	existing, err := s.userRepo.GetUserByName(name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, "", ErrUserExists
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(name, models.Role(role), passwordHash, email, phone, bio)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	signed, err := s.tokens.Issue(user.ID, user.Role, user.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, signed, nil
}

// Login verifies a name/password pair and issues a session token.
func (s *AuthService) Login(name, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetUserByName(name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, "", ErrUserNotFound
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidPassword
	}

	signed, err := s.tokens.Issue(user.ID, user.Role, user.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, signed, nil
}

// RequestReset starts a password reset for the user matching nameOrEmail.
// It generates a fresh token with the configured expiry, replacing any pending
// token, and returns it. When email delivery is configured and the user has
// an address, the token is also mailed best-effort.
func (s *AuthService) RequestReset(ctx context.Context, nameOrEmail string) (*models.User, string, error) {
	user, err := s.userRepo.GetUserByName(nameOrEmail)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		user, err = s.userRepo.GetUserByEmail(nameOrEmail)
		if err != nil {
			return nil, "", fmt.Errorf("failed to look up user by email: %w", err)
		}
	}
	if user == nil {
		return nil, "", ErrUserNotFound
	}

	resetToken, err := security.GenerateResetToken()
	if err != nil {
		return nil, "", err
	}

	expiry := time.Now().Add(s.resetTTL).UnixMilli()
	if err := s.userRepo.SetResetToken(user.ID, resetToken, expiry); err != nil {
		return nil, "", err
	}

	if s.email != nil && user.Email != "" {
		if err := s.email.SendPasswordResetEmail(ctx, user.Email, user.Name, resetToken); err != nil {
			log.Printf("Warning: failed to send reset email to %s: %v", user.Email, err)
		}
	}

	return user, resetToken, nil
}

// CompleteReset consumes a reset token and replaces the user's password.
// The (name, token) pair must match a pending reset and the token must not
// have expired. The token pair is cleared on success so it cannot be reused.
func (s *AuthService) CompleteReset(name, resetToken, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetUserByName(name)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !user.HasPendingReset() || user.ResetToken != resetToken {
		return ErrInvalidResetRequest
	}
	if user.ResetExpired(time.Now()) {
		return ErrResetTokenExpired
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.CompletePasswordReset(user.ID, passwordHash)
}
