package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"attendly/internal/models"
	"attendly/internal/token"
)

func newTestMiddleware() (*Middleware, *token.Service) {
	tokens := token.NewService("test-secret", 7*24*time.Hour)
	return NewMiddleware(tokens, nil), tokens
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body["error"]
}

func TestRequireAuth(t *testing.T) {
	mw, tokens := newTestMiddleware()

	valid, err := tokens.Issue(1, models.Role("Engineer"), "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	otherService := token.NewService("wrong-secret", time.Hour)
	forged, err := otherService.Issue(1, models.RoleManager, "mallory")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
			wantError:  "Missing token",
		},
		{
			name:       "one part",
			header:     valid,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid token format",
		},
		{
			name:       "three parts",
			header:     "Bearer " + valid + " extra",
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid token format",
		},
		{
			name:       "wrong scheme",
			header:     "Basic " + valid,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid token format",
		},
		{
			name:       "lowercase scheme rejected",
			header:     "bearer " + valid,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid token format",
		},
		{
			name:       "forged signature",
			header:     "Bearer " + forged,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid token",
		},
		{
			name:       "garbage token",
			header:     "Bearer not.a.jwt",
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid token",
		},
		{
			name:       "valid token",
			header:     "Bearer " + valid,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotClaims *token.Claims
			handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
				gotClaims = ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/api/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantError != "" {
				if got := decodeError(t, rec); got != tt.wantError {
					t.Errorf("error = %q, want %q", got, tt.wantError)
				}
				if gotClaims != nil {
					t.Error("handler ran despite rejected token")
				}
				return
			}

			if gotClaims == nil {
				t.Fatal("claims not attached to context")
			}
			if gotClaims.UserID != 1 || gotClaims.Name != "alice" || gotClaims.Role != models.Role("Engineer") {
				t.Errorf("unexpected claims: %+v", gotClaims)
			}
		})
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	// A service with a negative ttl issues tokens that are already expired
	expiredIssuer := token.NewService("test-secret", -time.Hour)
	expired, err := expiredIssuer.Issue(1, models.Role("Engineer"), "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	mw, _ := newTestMiddleware()
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run for expired token")
	})

	req := httptest.NewRequest("GET", "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	// The caller sees the generic message, not which check failed
	if got := decodeError(t, rec); got != "Invalid token" {
		t.Errorf("error = %q, want %q", got, "Invalid token")
	}
}

func TestRequireManager(t *testing.T) {
	mw, tokens := newTestMiddleware()

	tests := []struct {
		name       string
		role       models.Role
		wantStatus int
	}{
		{
			name:       "project manager allowed",
			role:       models.RoleManager,
			wantStatus: http.StatusOK,
		},
		{
			name:       "engineer forbidden",
			role:       models.Role("Engineer"),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "lowercase manager forbidden",
			role:       models.Role("project manager"),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "empty role forbidden",
			role:       models.Role(""),
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ran := false
			handler := mw.RequireAuth(mw.RequireManager(func(w http.ResponseWriter, r *http.Request) {
				ran = true
				w.WriteHeader(http.StatusOK)
			}))

			tok, err := tokens.Issue(1, tt.role, "someone")
			if err != nil {
				t.Fatalf("Issue() error = %v", err)
			}

			req := httptest.NewRequest("DELETE", "/api/users/2", nil)
			req.Header.Set("Authorization", "Bearer "+tok)
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusForbidden {
				if ran {
					t.Error("handler ran for non-manager: side effects would have occurred")
				}
				if got := decodeError(t, rec); got != "Forbidden" {
					t.Errorf("error = %q, want %q", got, "Forbidden")
				}
			}
		})
	}
}

func TestRequireManagerWithoutAuth(t *testing.T) {
	mw, _ := newTestMiddleware()

	// RequireManager without RequireAuth has no claims in context; deny
	handler := mw.RequireManager(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without authentication")
	})

	req := httptest.NewRequest("GET", "/api/all-attendance", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
