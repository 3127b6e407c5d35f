package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// TemporaryLock is an exclusive short-lived claim on a time range of one date within a salon.
// It knows nothing about staff; that binding lives in the session's selected slot.
type TemporaryLock struct {
	ID              string // lock token
	SalonID         int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	CreatedAt       time.Time
	ExpiresAt       time.Time
}

// IsActive reports whether the lock is still valid at now
func (l *TemporaryLock) IsActive(now time.Time) bool {
	return now.Before(l.ExpiresAt)
}

// StartMinutes returns the lock start as minutes since midnight
func (l *TemporaryLock) StartMinutes() int {
	return l.StartTime.Minutes()
}

// EndMinutes returns the lock end as minutes since midnight
func (l *TemporaryLock) EndMinutes() int {
	return l.StartTime.Minutes() + l.DurationMinutes
}
