package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"attendly/internal/security"
	"attendly/internal/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ClaimsContextKey is where the authenticated identity lives in the request
// context after RequireAuth has run.
const ClaimsContextKey ContextKey = "claims"

// bearerScheme is the only accepted Authorization scheme
const bearerScheme = "Bearer"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens  *token.Service
	limiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *token.Service, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		tokens:  tokens,
		limiter: limiter,
	}
}

// RequireAuth is the authentication gate. It extracts the bearer token from
// the Authorization header, verifies it and attaches the decoded claims to
// the request context. Every protected route passes through here; the
// specific verification failure is never leaked to the caller.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			writeError(w, http.StatusUnauthorized, "Missing token")
			return
		}

		parts := strings.Split(auth, " ")
		if len(parts) != 2 || parts[0] != bearerScheme {
			writeError(w, http.StatusUnauthorized, "Invalid token format")
			return
		}

		claims, err := m.tokens.Verify(parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// RequireManager enforces the role policy for administrative operations.
// It must run after RequireAuth. Non-managers get a 403 and the wrapped
// handler never runs, so no side effects occur.
func (m *Middleware) RequireManager(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil || !claims.Role.IsPrivileged() {
			writeError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next(w, r)
	}
}

// RateLimit throttles credential endpoints per client IP
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.limiter != nil && !m.limiter.Allow(security.ClientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// ClaimsFromContext retrieves the authenticated identity from the request
// context, or nil when the request did not pass through RequireAuth.
func ClaimsFromContext(ctx context.Context) *token.Claims {
	claims, ok := ctx.Value(ClaimsContextKey).(*token.Claims)
	if !ok {
		return nil
	}
	return claims
}
