package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, types.FormatDate(d))
	}
	return out
}

func TestScanDatesWeek(t *testing.T) {
	f := newFixture()
	f.service(1, 60, nil)
	f.capable(1, 1)
	f.capable(2, 1)

	// days 3 and 5 leave only 30 free minutes to every staff member
	for _, busy := range []string{"2030-01-09", "2030-01-11"} {
		d := day(t, busy)
		for _, staffID := range []int64{1, 2} {
			f.appointment(staffID, 1, at(t, d, "09:00"), at(t, d, "12:00"))
			f.appointment(staffID, 1, at(t, d, "12:30"), at(t, d, "18:00"))
		}
	}
	idx := f.index()
	now := day(t, "2030-01-01")

	result := ScanDates(idx, day(t, "2030-01-07"), day(t, "2030-01-13"), []PersonGroup{{PersonID: "p1", ServiceIDs: []int64{1}}}, now)

	assert.Equal(t, []string{"2030-01-07", "2030-01-08", "2030-01-10", "2030-01-12", "2030-01-13"}, formatDates(result.Available))
	assert.Equal(t, []string{"2030-01-09", "2030-01-11"}, formatDates(result.Unavailable))
}

func TestScanDatesPastDays(t *testing.T) {
	f := newFixture()
	f.service(1, 60, nil)
	f.capable(1, 1)
	idx := f.index()

	now := at(t, day(t, "2030-01-09"), "12:00")
	result := ScanDates(idx, day(t, "2030-01-07"), day(t, "2030-01-10"), []PersonGroup{{PersonID: "p1", ServiceIDs: []int64{1}}}, now)

	assert.Equal(t, []string{"2030-01-09", "2030-01-10"}, formatDates(result.Available))
	assert.Equal(t, []string{"2030-01-07", "2030-01-08"}, formatDates(result.Unavailable))
}

func TestScanDatesGroups(t *testing.T) {
	date := day(t, "2030-01-07")
	now := day(t, "2030-01-01")

	f := newFixture()
	f.service(1, 30, nil)
	f.service(2, 45, nil)
	f.service(3, 30, nil)
	f.capable(1, 1, 2)
	f.capable(2, 1)
	// staff 1, the only one able to do service 2, has a single 60 minute window
	f.appointment(1, 1, at(t, date, "09:00"), at(t, date, "12:00"))
	f.appointment(1, 1, at(t, date, "13:00"), at(t, date, "18:00"))
	idx := f.index()

	tests := []struct {
		name      string
		groups    []PersonGroup
		available bool
	}{
		{
			name:      "single short service fits",
			groups:    []PersonGroup{{PersonID: "p1", ServiceIDs: []int64{2}}},
			available: true,
		},
		{
			name:      "buffers count into the minimum duration",
			groups:    []PersonGroup{{PersonID: "p1", ServiceIDs: []int64{2, 1}}},
			available: false,
		},
		{
			name:      "service nobody performs",
			groups:    []PersonGroup{{PersonID: "p1", ServiceIDs: []int64{3}}},
			available: false,
		},
		{
			name: "every group must be feasible",
			groups: []PersonGroup{
				{PersonID: "p1", ServiceIDs: []int64{1}},
				{PersonID: "p2", ServiceIDs: []int64{2, 1}},
			},
			available: false,
		},
		{
			name:      "no groups",
			groups:    nil,
			available: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScanDates(idx, date, date, tt.groups, now)
			if tt.available {
				assert.Len(t, result.Available, 1)
			} else {
				assert.Len(t, result.Unavailable, 1)
			}
		})
	}
}

func TestScanDatesLeave(t *testing.T) {
	f := newFixture()
	f.service(1, 60, nil)
	f.capable(1, 1)
	f.leave(1, day(t, "2030-01-08"), day(t, "2030-01-08"))
	idx := f.index()

	result := ScanDates(idx, day(t, "2030-01-07"), day(t, "2030-01-09"), []PersonGroup{{PersonID: "p1", ServiceIDs: []int64{1}}}, day(t, "2030-01-01"))
	assert.Equal(t, []string{"2030-01-08"}, formatDates(result.Unavailable))
}

func TestLongestGap(t *testing.T) {
	hours := domain.WorkingHours{StartHour: 9, EndHour: 18}

	tests := []struct {
		name  string
		spans []Span
		want  int
	}{
		{name: "empty day", want: 540},
		{name: "morning booked", spans: []Span{{Start: 540, End: 720}}, want: 360},
		{name: "overlapping spans", spans: []Span{{Start: 600, End: 700}, {Start: 650, End: 1000}}, want: 80},
		{name: "fully booked", spans: []Span{{Start: 480, End: 1100}}, want: 0},
		{name: "outside hours ignored", spans: []Span{{Start: 400, End: 500}, {Start: 1100, End: 1200}}, want: 540},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, longestGap(hours, tt.spans))
		})
	}
}
