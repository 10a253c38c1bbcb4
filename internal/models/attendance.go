package models

import "time"

// AttendanceStatus is the fixed set of states an attendance entry can record.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusRemote  AttendanceStatus = "remote"
	StatusHalfDay AttendanceStatus = "half-day"
)

// Valid reports whether the status is one of the allowed values.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusRemote, StatusHalfDay:
		return true
	}
	return false
}

// AttendanceEntry records one attendance event for a user.
type AttendanceEntry struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userId"`
	UserName  string           `json:"userName,omitempty"`
	UserRole  Role             `json:"userRole,omitempty"`
	Status    AttendanceStatus `json:"status"`
	Note      string           `json:"note,omitempty"`
	CreatedBy int64            `json:"createdBy"`
	CreatedAt time.Time        `json:"createdAt"`
}
