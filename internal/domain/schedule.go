package domain

import "time"

// WorkingHours is one weekly working-hours row of a staff member
// DayOfWeek follows time.Weekday: 0 = Sunday
type WorkingHours struct {
	StaffID   int64
	DayOfWeek int
	StartHour int
	EndHour   int
}

func (w WorkingHours) StartMinutes() int {
	return w.StartHour * 60
}

func (w WorkingHours) EndMinutes() int {
	return w.EndHour * 60
}

// Contains reports whether [start, end) lies inside the working hours
func (w WorkingHours) Contains(start, end int) bool {
	return start >= w.StartMinutes() && end <= w.EndMinutes()
}

// Leave is a period when a staff member does not work. Dates are inclusive.
type Leave struct {
	ID        int64
	StaffID   int64
	StartDate time.Time
	EndDate   time.Time
}

// Covers reports whether the calendar date falls inside the leave
func (l Leave) Covers(date time.Time) bool {
	return !date.Before(l.StartDate) && !date.After(l.EndDate)
}
