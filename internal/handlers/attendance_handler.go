package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"attendly/internal/models"
	"attendly/internal/service"
)

// AttendanceHandler handles attendance recording and review endpoints
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

type createAttendanceRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
	Note   string `json:"note"`
}

// Create handles POST /api/attendance. Any authenticated user may record
// attendance for any target user; createdBy records the caller.
func (h *AttendanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var req createAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == 0 || req.Status == "" {
		writeError(w, http.StatusBadRequest, "userId and status required")
		return
	}

	entry, err := h.attendanceService.Record(req.UserID, models.AttendanceStatus(req.Status), req.Note, claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"attendance": entry})
}

// ListByUser handles GET /api/attendance/{userId}
func (h *AttendanceHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	entries, err := h.attendanceService.EntriesForUser(userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// ListAll handles GET /api/all-attendance (manager only)
func (h *AttendanceHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	entries, err := h.attendanceService.AllEntries()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// Delete handles DELETE /api/attendance/{id} (manager only)
func (h *AttendanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid attendance id")
		return
	}

	if err := h.attendanceService.DeleteEntry(id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
