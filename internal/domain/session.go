package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// SessionState is the state of a booking session
type SessionState string

const (
	SessionCreated      SessionState = "CREATED"
	SessionSlotSelected SessionState = "SLOT_SELECTED"
	SessionConfirmed    SessionState = "CONFIRMED"
)

var (
	ErrSessionExpired    = fmt.Errorf("%w: booking session expired", ErrExpired)
	ErrSessionCompleted  = fmt.Errorf("%w: booking session already confirmed", ErrCompleted)
	ErrInvalidTransition = fmt.Errorf("%w: invalid session state transition", ErrConflict)
	ErrNoSlotSelected    = fmt.Errorf("%w: no slot selected", ErrConflict)
)

// SelectedSlot is the slot a session currently holds, together with its lock token
type SelectedSlot struct {
	Date            time.Time
	StartTime       types.TimeString
	ServiceID       int64
	StaffIDs        []int64
	PeopleCount     int
	DurationMinutes int
	LockToken       string
}

// Same reports whether both slots describe the same booking (the lock token is ignored)
func (s *SelectedSlot) Same(other *SelectedSlot) bool {
	if s == nil || other == nil {
		return false
	}
	return s.Date.Equal(other.Date) &&
		s.StartTime == other.StartTime &&
		s.ServiceID == other.ServiceID &&
		s.PeopleCount == other.PeopleCount &&
		s.DurationMinutes == other.DurationMinutes &&
		slices.Equal(s.StaffIDs, other.StaffIDs)
}

// CustomerInfo is the contact data entered on confirmation
type CustomerInfo struct {
	Name  string
	Phone string
	Email *string
}

// BookingSession ties a customer-visible token to a salon for one booking flow.
// CREATED -> SLOT_SELECTED -> CONFIRMED; CONFIRMED is terminal and opaque.
type BookingSession struct {
	Token        string
	SalonID      int64
	State        SessionState
	ExpiresAt    time.Time
	SelectedSlot *SelectedSlot
	CustomerInfo *CustomerInfo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CheckAccess must run before any business logic on every entry point.
// A confirmed session reports Completed even after its expiry.
func (s *BookingSession) CheckAccess(now time.Time) error {
	if s.State == SessionConfirmed {
		return ErrSessionCompleted
	}
	if !now.Before(s.ExpiresAt) {
		return ErrSessionExpired
	}
	return nil
}

// CanSelectSlot reports whether the lock operation is allowed in the current state
func (s *BookingSession) CanSelectSlot() error {
	if s.State != SessionCreated && s.State != SessionSlotSelected {
		return ErrInvalidTransition
	}
	return nil
}

// SelectSlot records a newly locked slot
func (s *BookingSession) SelectSlot(slot SelectedSlot, now time.Time) error {
	if err := s.CanSelectSlot(); err != nil {
		return err
	}
	s.State = SessionSlotSelected
	s.SelectedSlot = &slot
	s.UpdatedAt = now
	return nil
}

// ReadyToConfirm reports whether confirmation may proceed
func (s *BookingSession) ReadyToConfirm() error {
	if s.State != SessionSlotSelected || s.SelectedSlot == nil {
		return ErrNoSlotSelected
	}
	return nil
}

// Confirm freezes the session with the customer's contact data
func (s *BookingSession) Confirm(info CustomerInfo, now time.Time) error {
	if err := s.ReadyToConfirm(); err != nil {
		return err
	}
	s.State = SessionConfirmed
	s.CustomerInfo = &info
	s.UpdatedAt = now
	return nil
}
