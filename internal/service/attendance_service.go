package service

import (
	"errors"
	"fmt"

	"attendly/internal/models"
	"attendly/internal/repository"
)

var ErrInvalidStatus = errors.New("invalid attendance status")

// AttendanceService handles attendance recording and review
type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	userRepo       *repository.UserRepository
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(attendanceRepo *repository.AttendanceRepository, userRepo *repository.UserRepository) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		userRepo:       userRepo,
	}
}

// Record creates an attendance entry for the target user. Any authenticated
// caller may record attendance for any user; createdBy tracks who did.
func (s *AttendanceService) Record(userID int64, status models.AttendanceStatus, note string, createdBy int64) (*models.AttendanceEntry, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	target, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up target user: %w", err)
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	entry, err := s.attendanceRepo.CreateEntry(userID, status, note, createdBy)
	if err != nil {
		return nil, err
	}
	entry.UserName = target.Name
	entry.UserRole = target.Role
	return entry, nil
}

// EntriesForUser returns a user's attendance entries, newest first
func (s *AttendanceService) EntriesForUser(userID int64) ([]models.AttendanceEntry, error) {
	return s.attendanceRepo.GetEntriesByUser(userID)
}

// AllEntries returns every attendance entry, newest first. Callers must be
// authorized by the role policy before reaching this.
func (s *AttendanceService) AllEntries() ([]models.AttendanceEntry, error) {
	return s.attendanceRepo.GetAllEntries()
}

// DeleteEntry removes a single attendance entry
func (s *AttendanceService) DeleteEntry(id int64) error {
	return s.attendanceRepo.DeleteEntry(id)
}
