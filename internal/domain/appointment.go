package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentBooked    AppointmentStatus = "BOOKED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
)

// OccupyingStatuses are the statuses whose appointments block staff time
var OccupyingStatuses = []AppointmentStatus{
	AppointmentBooked,
	AppointmentCompleted,
}

// Appointment is one staff member performing one service for a customer
type Appointment struct {
	ID         int64
	SalonID    int64
	StaffID    int64
	ServiceID  int64
	CustomerID *int64
	StartTime  time.Time
	EndTime    time.Time
	Status     AppointmentStatus
	Price      decimal.Decimal
	CreatedAt  time.Time
}

// OccupiesTime returns true if the appointment blocks staff time
func (a *Appointment) OccupiesTime() bool {
	return a.Status == AppointmentBooked || a.Status == AppointmentCompleted
}

// Overlaps reports whether the appointment intersects [start, end).
// Touching intervals do not overlap.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && a.EndTime.After(start)
}
