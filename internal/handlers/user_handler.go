package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"attendly/internal/models"
	"attendly/internal/service"
)

// UserHandler handles user listing and administration endpoints
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /api/users. Sensitive fields are stripped.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	public := make([]models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"users": public})
}

type createUserRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Bio      string `json:"bio"`
}

// Create handles POST /api/users (manager only)
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Role == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, role, password required")
		return
	}

	user, err := h.userService.CreateUser(req.Name, req.Role, req.Password, req.Email, req.Phone, req.Bio)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user.Public()})
}

// Delete handles DELETE /api/users/{id} (manager only). Deleting a user
// cascades to their attendance entries.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
