package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"attendly/internal/service"
	"attendly/internal/validation"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError writes a JSON error body {"error": message}
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service failures to JSON error responses. Known
// domain failures become 400s with the message the frontend expects;
// anything else is a 500 with the detail kept in the server log.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserExists):
		writeError(w, http.StatusBadRequest, "User with that name already exists")
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusBadRequest, "User not found")
	case errors.Is(err, service.ErrInvalidPassword):
		writeError(w, http.StatusBadRequest, "Invalid password")
	case errors.Is(err, service.ErrInvalidResetRequest):
		writeError(w, http.StatusBadRequest, "Invalid reset request")
	case errors.Is(err, service.ErrResetTokenExpired):
		writeError(w, http.StatusBadRequest, "Reset token expired")
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "Invalid attendance status")
	default:
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, vErr.Msg)
			return
		}
		log.Printf("Internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
