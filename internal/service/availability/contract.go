package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// CatalogSource read access to the salon catalog and staff schedules
type CatalogSource interface {
	GetSalon(ctx context.Context, salonID int64) (*domain.Salon, error)
	ListServices(ctx context.Context, salonID int64) ([]*domain.Service, error)
	ListCategories(ctx context.Context, salonID int64) ([]*domain.Category, error)
	ListStaffServices(ctx context.Context, salonID int64, serviceIDs []int64) ([]*domain.StaffService, error)
	ListWorkingHours(ctx context.Context, staffIDs []int64) ([]*domain.WorkingHours, error)
	ListLeaves(ctx context.Context, staffIDs []int64, from, to time.Time) ([]*domain.Leave, error)
}

// AppointmentSource read access to time-occupying appointments
type AppointmentSource interface {
	ListOccupying(ctx context.Context, salonID int64, from, to time.Time) ([]*domain.Appointment, error)
}

type Logger interface {
	Debug(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
