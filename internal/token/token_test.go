package token

import (
	"errors"
	"testing"
	"time"

	"attendly/internal/models"
)

const testSecret = "test-signing-key"

func TestIssueAndVerify(t *testing.T) {
	svc := NewService(testSecret, 7*24*time.Hour)

	tok, err := svc.Issue(42, models.Role("Engineer"), "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if tok == "" {
		t.Fatal("Issue() returned empty token")
	}

	claims, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != models.Role("Engineer") {
		t.Errorf("Role = %q, want Engineer", claims.Role)
	}
	if claims.Name != "alice" {
		t.Errorf("Name = %q, want alice", claims.Name)
	}
}

func TestVerifyValidityWindow(t *testing.T) {
	issued := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	svc := NewService(testSecret, 7*24*time.Hour)
	svc.now = func() time.Time { return issued }

	tok, err := svc.Issue(1, models.RoleManager, "boss")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{
			name: "accepted six days after issuance",
			at:   issued.Add(6 * 24 * time.Hour),
		},
		{
			name:    "rejected eight days after issuance",
			at:      issued.Add(8 * 24 * time.Hour),
			wantErr: ErrExpired,
		},
		{
			name: "accepted immediately",
			at:   issued,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.now = func() time.Time { return tt.at }
			_, err := svc.Verify(tok)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	issuer := NewService(testSecret, time.Hour)
	verifier := NewService("a-different-key", time.Hour)

	tok, err := issuer.Issue(1, models.Role("Engineer"), "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := verifier.Verify(tok); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("Verify() error = %v, want ErrInvalidSignature", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewService(testSecret, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "not a jwt", token: "hello world"},
		{name: "truncated jwt", token: "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Verify(tt.token); !errors.Is(err, ErrMalformed) {
				t.Errorf("Verify(%q) error = %v, want ErrMalformed", tt.token, err)
			}
		})
	}
}

func TestIssueProducesFreshTokens(t *testing.T) {
	svc := NewService(testSecret, time.Hour)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	calls := 0
	svc.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}

	t1, err := svc.Issue(1, models.Role("Engineer"), "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	t2, err := svc.Issue(1, models.Role("Engineer"), "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Both are valid, even though they differ (different iat/exp)
	if t1 == t2 {
		t.Error("expected distinct tokens for successive issues")
	}
	svc.now = func() time.Time { return base.Add(time.Minute) }
	if _, err := svc.Verify(t1); err != nil {
		t.Errorf("Verify(t1) error = %v", err)
	}
	if _, err := svc.Verify(t2); err != nil {
		t.Errorf("Verify(t2) error = %v", err)
	}
}
