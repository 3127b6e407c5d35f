package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the only accepted textual date form.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDate возвращается при некорректной строке даты
	ErrInvalidDate = errors.New("invalid date string")

	// ErrInvalidDuration возвращается, когда длительность не является положительным целым числом
	ErrInvalidDuration = errors.New("invalid duration string")
)

// ParseDate parses "YYYY-MM-DD" into a UTC midnight calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// DateOrZero parses s like ParseDate; malformed input yields the zero time.
func DateOrZero(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		return time.Time{}
	}
	return d
}

// FormatDate renders the calendar part of d.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// DateOf returns the calendar date of t (as seen in t's location) as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDurationMinutes parses a legacy TEXT duration such as "60".
// Only positive integers are accepted.
func ParseDurationMinutes(s string) (int, error) {
	minutes, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || minutes <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	return minutes, nil
}

// FormatDurationMinutes is the write-side counterpart of ParseDurationMinutes.
func FormatDurationMinutes(minutes int) string {
	return strconv.Itoa(minutes)
}
