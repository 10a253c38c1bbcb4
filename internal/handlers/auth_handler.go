package handlers

import (
	"encoding/json"
	"net/http"

	"attendly/internal/models"
	"attendly/internal/service"
)

// AuthHandler handles signup, login and the password reset endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`
}

type authResponse struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// Signup handles POST /api/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Role == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, role and password required")
		return
	}

	user, signed, err := h.authService.Signup(req.Name, req.Role, req.Password, req.Email, req.Phone, req.Bio)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{User: user.Public(), Token: signed})
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name and password required")
		return
	}

	user, signed, err := h.authService.Login(req.Name, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{User: user.Public(), Token: signed})
}

type forgotPasswordRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ForgotPassword handles POST /api/forgot-password. The reset token is
// returned directly in the response; it is also mailed when the email
// service is configured.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lookup := req.Name
	if lookup == "" {
		lookup = req.Email
	}
	if lookup == "" {
		writeError(w, http.StatusBadRequest, "name or email required")
		return
	}

	_, resetToken, err := h.authService.RequestReset(r.Context(), lookup)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Reset token generated",
		"token":   resetToken,
	})
}

type resetPasswordRequest struct {
	Name        string `json:"name"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword handles POST /api/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Token == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "name, token and newPassword required")
		return
	}

	if err := h.authService.CompleteReset(req.Name, req.Token, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset successful"})
}
