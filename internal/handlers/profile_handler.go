package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"attendly/internal/service"
)

// ProfileHandler handles the authenticated user's own profile and avatar
type ProfileHandler struct {
	userService   *service.UserService
	uploadDir     string
	uploadMaxSize int64
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(userService *service.UserService, uploadDir string, uploadMaxSize int64) *ProfileHandler {
	return &ProfileHandler{
		userService:   userService,
		uploadDir:     uploadDir,
		uploadMaxSize: uploadMaxSize,
	}
}

// GetProfile handles GET /api/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	user, err := h.userService.GetUser(claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user.Public()})
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
	Bio   *string `json:"bio"`
}

// UpdateProfile handles PUT /api/profile. Absent fields are left unchanged.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(claims.UserID, req.Name, req.Email, req.Phone, req.Bio)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user.Public()})
}

// allowed avatar extensions; anything else is stored as .img
var avatarExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// UploadAvatar handles POST /api/upload-avatar. The multipart field "avatar"
// is stored under the upload directory with a random filename; the previous
// avatar file is removed best-effort.
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxSize)
	if err := r.ParseMultipartForm(h.uploadMaxSize); err != nil {
		writeError(w, http.StatusBadRequest, "File too large or invalid form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !avatarExtensions[ext] {
		ext = ".img"
	}
	filename := uuid.New().String() + ext

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		log.Printf("Error creating upload dir: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	dst, err := os.Create(filepath.Join(h.uploadDir, filename))
	if err != nil {
		log.Printf("Error creating avatar file: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Printf("Error writing avatar file: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	avatarPath := "/uploads/" + filename
	oldAvatar, err := h.userService.SetAvatar(claims.UserID, avatarPath)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Best-effort cleanup of the replaced file
	if oldAvatar != "" {
		oldName := strings.TrimPrefix(oldAvatar, "/uploads/")
		if err := os.Remove(filepath.Join(h.uploadDir, oldName)); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: failed to remove old avatar %s: %v", oldAvatar, err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"avatar": avatarPath})
}
