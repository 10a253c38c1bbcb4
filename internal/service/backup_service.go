package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"attendly/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version    string             `json:"version"`
	ExportedAt time.Time          `json:"exported_at"`
	Users      []UserBackup       `json:"users"`
	Attendance []AttendanceBackup `json:"attendance"`
}

// UserBackup represents a user record for backup. Password hashes and any
// pending reset token travel with the backup so restored accounts keep
// working.
type UserBackup struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	PasswordHash     string    `json:"password_hash"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Bio              string    `json:"bio"`
	Avatar           string    `json:"avatar"`
	ResetToken       string    `json:"reset_token"`
	ResetTokenExpiry int64     `json:"reset_token_expiry"`
	CreatedAt        time.Time `json:"created_at"`
}

// AttendanceBackup represents an attendance entry for backup
type AttendanceBackup struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes the full database as JSON to w
func (s *BackupService) Export(w io.Writer) error {
	data := BackupData{
		Version:    "1",
		ExportedAt: time.Now(),
	}

	rows, err := s.db.Query(`
		SELECT id, name, role, password_hash, COALESCE(email, ''), COALESCE(phone, ''),
			COALESCE(bio, ''), COALESCE(avatar, ''), COALESCE(reset_token, ''),
			COALESCE(reset_token_expiry, 0), created_at
		FROM users ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Name, &u.Role, &u.PasswordHash, &u.Email, &u.Phone,
			&u.Bio, &u.Avatar, &u.ResetToken, &u.ResetTokenExpiry, &u.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan user: %w", err)
		}
		data.Users = append(data.Users, u)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	arows, err := s.db.Query(`
		SELECT id, user_id, status, COALESCE(note, ''), created_by, created_at
		FROM attendance ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("failed to export attendance: %w", err)
	}
	defer arows.Close()

	for arows.Next() {
		var a AttendanceBackup
		if err := arows.Scan(&a.ID, &a.UserID, &a.Status, &a.Note, &a.CreatedBy, &a.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan attendance: %w", err)
		}
		data.Attendance = append(data.Attendance, a)
	}
	if err := arows.Err(); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportToFile exports the database to a JSON file
func (s *BackupService) ExportToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()
	return s.Export(f)
}

// Import restores a JSON backup. When clear is true, existing data is
// removed first; otherwise imported rows are appended with fresh IDs and
// attendance references are remapped.
func (s *BackupService) Import(r io.Reader, clear bool) error {
	var data BackupData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if clear {
		if _, err := tx.Exec("DELETE FROM attendance"); err != nil {
			return fmt.Errorf("failed to clear attendance: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM users"); err != nil {
			return fmt.Errorf("failed to clear users: %w", err)
		}
	}

	// Old user ID → new user ID, for remapping attendance references
	idMap := make(map[int64]int64, len(data.Users))

	for _, u := range data.Users {
		newID, err := tx.ExecReturningID(`
			INSERT INTO users (name, role, password_hash, email, phone, bio, avatar, reset_token, reset_token_expiry, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, u.Name, u.Role, u.PasswordHash, u.Email, u.Phone, u.Bio, u.Avatar, u.ResetToken, u.ResetTokenExpiry, u.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %s: %w", u.Name, err)
		}
		idMap[u.ID] = newID
	}

	skipped := 0
	for _, a := range data.Attendance {
		userID, ok := idMap[a.UserID]
		if !ok {
			skipped++
			continue
		}
		createdBy := idMap[a.CreatedBy] // zero when the creator wasn't exported
		if _, err := tx.Exec(`
			INSERT INTO attendance (user_id, status, note, created_by, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, userID, a.Status, a.Note, createdBy, a.CreatedAt); err != nil {
			return fmt.Errorf("failed to import attendance entry: %w", err)
		}
	}
	if skipped > 0 {
		log.Printf("Warning: skipped %d attendance entries referencing unknown users", skipped)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	log.Printf("Imported %d users and %d attendance entries", len(data.Users), len(data.Attendance)-skipped)
	return nil
}

// ImportFromFile restores a JSON backup file
func (s *BackupService) ImportFromFile(path string, clear bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()
	return s.Import(f, clear)
}
