package repository

import (
	"fmt"
	"time"

	"attendly/internal/database"
	"attendly/internal/models"
)

// AttendanceRepository handles database operations for attendance entries
type AttendanceRepository struct {
	db *database.DB
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *database.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// CreateEntry inserts a new attendance entry
func (r *AttendanceRepository) CreateEntry(userID int64, status models.AttendanceStatus, note string, createdBy int64) (*models.AttendanceEntry, error) {
	query := `
		INSERT INTO attendance (user_id, status, note, created_by)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, userID, string(status), note, createdBy)
	if err != nil {
		return nil, fmt.Errorf("failed to create attendance entry: %w", err)
	}

	return &models.AttendanceEntry{
		ID:        id,
		UserID:    userID,
		Status:    status,
		Note:      note,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}, nil
}

const entrySelect = `
	SELECT a.id, a.user_id, u.name, u.role, a.status, COALESCE(a.note, ''), a.created_by, a.created_at
	FROM attendance a
	JOIN users u ON u.id = a.user_id
`

func (r *AttendanceRepository) queryEntries(query string, args ...interface{}) ([]models.AttendanceEntry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var entries []models.AttendanceEntry
	for rows.Next() {
		var e models.AttendanceEntry
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.UserName,
			&e.UserRole,
			&e.Status,
			&e.Note,
			&e.CreatedBy,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetEntriesByUser retrieves a user's attendance entries, newest first
func (r *AttendanceRepository) GetEntriesByUser(userID int64) ([]models.AttendanceEntry, error) {
	return r.queryEntries(entrySelect+" WHERE a.user_id = ? ORDER BY a.created_at DESC, a.id DESC", userID)
}

// GetAllEntries retrieves every attendance entry across users, newest first
func (r *AttendanceRepository) GetAllEntries() ([]models.AttendanceEntry, error) {
	return r.queryEntries(entrySelect + " ORDER BY a.created_at DESC, a.id DESC")
}

// DeleteEntry removes a single attendance entry by ID
func (r *AttendanceRepository) DeleteEntry(id int64) error {
	query := "DELETE FROM attendance WHERE id = ?"
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete attendance entry: %w", err)
	}
	return nil
}

// CountEntriesByUser returns the number of entries referencing a user
func (r *AttendanceRepository) CountEntriesByUser(userID int64) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM attendance WHERE user_id = ?"
	if err := r.db.QueryRow(query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attendance: %w", err)
	}
	return count, nil
}
