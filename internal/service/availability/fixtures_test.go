package availability

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fixture struct {
	in     IndexInput
	nextID int64
}

func newFixture() *fixture {
	return &fixture{
		in: IndexInput{
			Salon: &domain.Salon{
				ID:       1,
				Name:     "Studio",
				Timezone: "UTC",
				Settings: domain.DefaultSalonSettings(),
			},
		},
	}
}

func (f *fixture) category(id int64, sequential bool) *domain.Category {
	c := &domain.Category{ID: id, SalonID: 1, Name: "category", SequentialRequired: sequential}
	f.in.Categories = append(f.in.Categories, c)
	return c
}

func (f *fixture) service(id int64, duration int, categoryID *int64) *domain.Service {
	s := &domain.Service{
		ID:              id,
		SalonID:         1,
		Name:            "service",
		DurationMinutes: duration,
		Price:           decimal.NewFromInt(100),
		CategoryID:      categoryID,
		IsActive:        true,
	}
	f.in.Services = append(f.in.Services, s)
	return s
}

func (f *fixture) capable(staffID int64, serviceIDs ...int64) {
	for _, serviceID := range serviceIDs {
		f.in.StaffServices = append(f.in.StaffServices, &domain.StaffService{
			StaffID:   staffID,
			ServiceID: serviceID,
			IsActive:  true,
		})
	}
}

func (f *fixture) hours(staffID int64, dayOfWeek, start, end int) {
	f.in.WorkingHours = append(f.in.WorkingHours, &domain.WorkingHours{
		StaffID:   staffID,
		DayOfWeek: dayOfWeek,
		StartHour: start,
		EndHour:   end,
	})
}

func (f *fixture) appointment(staffID, serviceID int64, start, end time.Time) {
	f.nextID++
	f.in.Appointments = append(f.in.Appointments, &domain.Appointment{
		ID:        f.nextID,
		SalonID:   1,
		StaffID:   staffID,
		ServiceID: serviceID,
		StartTime: start,
		EndTime:   end,
		Status:    domain.AppointmentBooked,
	})
}

func (f *fixture) leave(staffID int64, from, to time.Time) {
	f.nextID++
	f.in.Leaves = append(f.in.Leaves, &domain.Leave{ID: f.nextID, StaffID: staffID, StartDate: from, EndDate: to})
}

func (f *fixture) index() *Index {
	return NewIndex(f.in)
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return d
}

// at returns the instant hh:mm on a UTC calendar date
func at(t *testing.T, date time.Time, hhmm string) time.Time {
	t.Helper()
	ts, err := types.NewTimeStringFromString(hhmm)
	require.NoError(t, err)
	return date.Add(time.Duration(ts.Minutes()) * time.Minute)
}

func minutes(t *testing.T, hhmm string) int {
	t.Helper()
	ts, err := types.NewTimeStringFromString(hhmm)
	require.NoError(t, err)
	return ts.Minutes()
}
