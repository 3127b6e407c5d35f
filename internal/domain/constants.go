package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Salon defaults, used when a salon has no settings row
const (
	DefaultWorkStartHour           = 9
	DefaultWorkEndHour             = 18
	DefaultSlotIntervalMinutes     = 30
	DefaultMinBookingNoticeMinutes = 0
	DefaultTimezone                = "Europe/Istanbul"
)

// Scheduling defaults
const (
	DefaultBufferMinutes          = 15
	DefaultServiceDurationMinutes = 60
	DefaultPeopleCount            = 1
)

// Session and lock lifetimes
const (
	DefaultSessionTTL = 6 * time.Hour
	DefaultLockTTL    = 15 * time.Minute
)

// Search limits of the chain slot search
const (
	AnchorStepMinutes      = 5
	MaxAnchors             = 500
	MaxCombinations        = 200
	SyncMaxGapMinutes      = 15 // следующий участник начинает не позже конца якоря + 15 минут
	SyncMaxLeadMinutes     = 30 // и не раньше начала якоря - 30 минут
	MaxDatesRangeDays      = 62
	MaxPeoplePerBooking    = 10
	MaxServicesPerPerson   = 20
	MaxCustomerNameLength  = 200
	MaxCustomerPhoneLength = 32
)
