package validation

import (
	"regexp"
	"strings"
)

// Error marks a failure caused by bad caller input. Handlers map it to a
// 400 response instead of a generic 500.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return e.Msg
}

func fail(msg string) error {
	return &Error{Msg: msg}
}

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateName checks a user name (the identity key)
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fail("name is required")
	}
	if len(name) > 100 {
		return fail("name must be 100 characters or fewer")
	}
	return nil
}

// ValidateRole checks the free-form role string
func ValidateRole(role string) error {
	if strings.TrimSpace(role) == "" {
		return fail("role is required")
	}
	if len(role) > 100 {
		return fail("role must be 100 characters or fewer")
	}
	return nil
}

// ValidatePassword enforces the minimum password length
func ValidatePassword(password string) error {
	if password == "" {
		return fail("password is required")
	}
	if len(password) < 6 {
		return fail("password must be at least 6 characters")
	}
	return nil
}

// ValidateEmail checks basic email shape; empty is allowed (email is optional)
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !emailRegexp.MatchString(email) {
		return fail("invalid email address")
	}
	return nil
}
