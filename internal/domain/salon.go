package domain

import "time"

// Salon is a tenant of the booking platform
type Salon struct {
	ID       int64
	Name     string
	Timezone string
	Settings SalonSettings
}

// SalonSettings holds the salon-wide defaults used by the availability engine
type SalonSettings struct {
	WorkStartHour           int
	WorkEndHour             int
	SlotIntervalMinutes     int
	MinBookingNoticeMinutes int
}

// DefaultSalonSettings returns the settings applied when a salon has none stored
func DefaultSalonSettings() SalonSettings {
	return SalonSettings{
		WorkStartHour:           DefaultWorkStartHour,
		WorkEndHour:             DefaultWorkEndHour,
		SlotIntervalMinutes:     DefaultSlotIntervalMinutes,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}

// Location resolves the salon timezone, falling back to DefaultTimezone and then UTC
func (s *Salon) Location() *time.Location {
	if s.Timezone != "" {
		if loc, err := time.LoadLocation(s.Timezone); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// DefaultHours returns the salon-level working hours injected for staff-days without a row
func (s *Salon) DefaultHours(staffID int64, dayOfWeek int) WorkingHours {
	return WorkingHours{
		StaffID:   staffID,
		DayOfWeek: dayOfWeek,
		StartHour: s.Settings.WorkStartHour,
		EndHour:   s.Settings.WorkEndHour,
	}
}
