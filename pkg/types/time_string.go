package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrTimeOutOfRange возвращается, когда часы или минуты вне допустимого диапазона
	ErrTimeOutOfRange = errors.New("time string out of range")

	// ErrTimeOverflow возвращается, когда результат арифметики выходит за пределы суток
	ErrTimeOverflow = errors.New("time string overflows the day")
)

// TimeString is a wall-clock time of day normalized to "HH:MM".
// The zero value ("") means "not set".
type TimeString string

// NewTimeStringFromString parses "H:MM", "HH:MM" or "HH:MM:SS" and normalizes it to "HH:MM".
// Hours must be 0-23 and minutes 0-59; seconds are ignored.
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := parseClock(s)
	if err != nil {
		return "", err
	}
	return fromMinutes(minutes), nil
}

// TimeStringOrRaw normalizes s like NewTimeStringFromString.
// Malformed input is kept as is, so Validate reports it later.
func TimeStringOrRaw(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		return TimeString(s)
	}
	return t
}

// NewTimeString takes the wall-clock part of t.
func NewTimeString(t time.Time) TimeString {
	return fromMinutes(t.Hour()*60 + t.Minute())
}

// NewTimeStringFromMinutes converts minutes since midnight to a TimeString.
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return fromMinutes(minutes), nil
}

// FormatMinutes renders minutes since midnight as "HH:MM" without range checks.
// 24:00 is rendered as such, which is what chain end times need.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func fromMinutes(minutes int) TimeString {
	return TimeString(FormatMinutes(minutes))
}

func parseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrTimeOutOfRange, s)
	}

	return hour*60 + minute, nil
}

// Minutes returns minutes since midnight. Invalid or empty values yield 0.
func (t TimeString) Minutes() int {
	minutes, err := parseClock(string(t))
	if err != nil {
		return 0
	}
	return minutes
}

// Validate checks that t holds a well-formed time of day.
func (t TimeString) Validate() error {
	_, err := parseClock(string(t))
	return err
}

// IsZero reports whether t is unset.
func (t TimeString) IsZero() bool {
	return t == ""
}

// AddMinutes shifts t by n minutes. The result must stay within the same day.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	minutes, err := parseClock(string(t))
	if err != nil {
		return "", err
	}
	result := minutes + n
	if result < 0 || result >= minutesPerDay {
		return "", fmt.Errorf("%w: %s%+d", ErrTimeOverflow, t, n)
	}
	return fromMinutes(result), nil
}

// IsBefore reports whether t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// On combines t with the calendar date of day in loc.
func (t TimeString) On(day time.Time, loc *time.Location) time.Time {
	minutes := t.Minutes()
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, loc)
}

func (t TimeString) String() string {
	return string(t)
}

// Scan implements sql.Scanner for TEXT and TIME columns.
func (t *TimeString) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeFormat, src)
	}

	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}
