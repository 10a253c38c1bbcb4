package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"attendly/internal/service"
	"attendly/internal/validation"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	writeError(rec, http.StatusTeapot, "Teapot")

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want 418", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if got := decodeError(t, rec); got != "Teapot" {
		t.Errorf("error = %q, want Teapot", got)
	}
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "duplicate user",
			err:        service.ErrUserExists,
			wantStatus: http.StatusBadRequest,
			wantError:  "User with that name already exists",
		},
		{
			name:       "wrapped duplicate user",
			err:        fmt.Errorf("signup: %w", service.ErrUserExists),
			wantStatus: http.StatusBadRequest,
			wantError:  "User with that name already exists",
		},
		{
			name:       "user not found",
			err:        service.ErrUserNotFound,
			wantStatus: http.StatusBadRequest,
			wantError:  "User not found",
		},
		{
			name:       "invalid password",
			err:        service.ErrInvalidPassword,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid password",
		},
		{
			name:       "invalid reset request",
			err:        service.ErrInvalidResetRequest,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid reset request",
		},
		{
			name:       "expired reset token",
			err:        service.ErrResetTokenExpired,
			wantStatus: http.StatusBadRequest,
			wantError:  "Reset token expired",
		},
		{
			name:       "invalid status",
			err:        service.ErrInvalidStatus,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid attendance status",
		},
		{
			name:       "validation error",
			err:        &validation.Error{Msg: "password must be at least 6 characters"},
			wantStatus: http.StatusBadRequest,
			wantError:  "password must be at least 6 characters",
		},
		{
			name:       "unexpected error is a 500 without detail",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := decodeError(t, rec); got != tt.wantError {
				t.Errorf("error = %q, want %q", got, tt.wantError)
			}
		})
	}
}
