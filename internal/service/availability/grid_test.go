package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func slotStarts(slots []GridSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, types.FormatMinutes(s.Start))
	}
	return out
}

func gridFixture() *fixture {
	f := newFixture()
	f.service(1, 60, nil)
	f.capable(1, 1)
	f.capable(2, 1)
	return f
}

func TestGenerateGridFullDay(t *testing.T) {
	date := day(t, "2030-01-07")
	idx := gridFixture().index()

	slots := GenerateGrid(idx, GridInput{Date: date, ServiceID: 1, PeopleCount: 1, Now: day(t, "2030-01-01")})

	require.Len(t, slots, 17)
	assert.Equal(t, "09:00", types.FormatMinutes(slots[0].Start))
	assert.Equal(t, "17:00", types.FormatMinutes(slots[16].Start))
	assert.Equal(t, []int64{1, 2}, slots[0].StaffIDs())
	assert.Equal(t, 60, slots[0].Staff[0].DurationMinutes)
}

func TestGenerateGridAppointmentsAndPeopleCount(t *testing.T) {
	date := day(t, "2030-01-07")
	f := gridFixture()
	f.appointment(1, 1, at(t, date, "10:00"), at(t, date, "11:00"))
	idx := f.index()
	now := day(t, "2030-01-01")

	single := GenerateGrid(idx, GridInput{Date: date, ServiceID: 1, PeopleCount: 1, Now: now})
	require.Len(t, single, 17)
	assert.Equal(t, []int64{2}, single[1].StaffIDs()) // 09:30 overlaps for staff 1
	assert.Equal(t, []int64{1, 2}, single[0].StaffIDs())
	assert.Equal(t, []int64{1, 2}, single[4].StaffIDs()) // 11:00 touches the end

	pair := GenerateGrid(idx, GridInput{Date: date, ServiceID: 1, PeopleCount: 2, Now: now})
	assert.NotContains(t, slotStarts(pair), "09:30")
	assert.NotContains(t, slotStarts(pair), "10:00")
	assert.NotContains(t, slotStarts(pair), "10:30")
	assert.Contains(t, slotStarts(pair), "11:00")
	assert.Len(t, pair, 14)
}

func TestGenerateGridLocks(t *testing.T) {
	date := day(t, "2030-01-07")
	idx := gridFixture().index()
	now := at(t, day(t, "2030-01-06"), "12:00")

	lock := &domain.TemporaryLock{
		ID:              "lock-1",
		SalonID:         1,
		Date:            date,
		StartTime:       types.TimeString("12:00"),
		DurationMinutes: 60,
		ExpiresAt:       now.Add(10 * time.Minute),
	}

	t.Run("foreign active lock blocks overlapping starts", func(t *testing.T) {
		slots := GenerateGrid(idx, GridInput{Date: date, ServiceID: 1, PeopleCount: 1, Locks: []*domain.TemporaryLock{lock}, Now: now})
		starts := slotStarts(slots)
		assert.NotContains(t, starts, "11:30")
		assert.NotContains(t, starts, "12:00")
		assert.NotContains(t, starts, "12:30")
		assert.Contains(t, starts, "11:00")
		assert.Contains(t, starts, "13:00")
	})

	t.Run("own lock is ignored", func(t *testing.T) {
		slots := GenerateGrid(idx, GridInput{Date: date, ServiceID: 1, PeopleCount: 1, Locks: []*domain.TemporaryLock{lock}, OwnLockID: "lock-1", Now: now})
		assert.Len(t, slots, 17)
	})

	t.Run("expired lock is ignored", func(t *testing.T) {
		later := now.Add(time.Hour)
		slots := GenerateGrid(idx, GridInput{Date: date, ServiceID: 1, PeopleCount: 1, Locks: []*domain.TemporaryLock{lock}, Now: later})
		assert.Len(t, slots, 17)
	})
}

func TestGenerateGridToday(t *testing.T) {
	date := day(t, "2030-01-07")
	f := gridFixture()
	f.in.Salon.Settings.MinBookingNoticeMinutes = 30
	idx := f.index()

	slots := GenerateGrid(idx, GridInput{Date: date, ServiceID: 1, PeopleCount: 1, Now: at(t, date, "10:10")})
	require.NotEmpty(t, slots)
	assert.Equal(t, "11:00", types.FormatMinutes(slots[0].Start))

	past := GenerateGrid(idx, GridInput{Date: day(t, "2030-01-06"), ServiceID: 1, PeopleCount: 1, Now: at(t, date, "10:10")})
	assert.Empty(t, past)
}

func TestGenerateGridStaffDuration(t *testing.T) {
	date := day(t, "2030-01-07")
	f := newFixture()
	f.service(1, 60, nil)
	f.capable(1, 1)
	f.in.StaffServices = append(f.in.StaffServices, &domain.StaffService{StaffID: 2, ServiceID: 1, DurationOverride: ptr.Ptr(90), IsActive: true})
	f.in.Salon.Settings.SlotIntervalMinutes = 15
	idx := f.index()

	slots := GenerateGrid(idx, GridInput{Date: date, ServiceID: 1, PeopleCount: 1, Now: day(t, "2030-01-01")})
	require.NotEmpty(t, slots)

	last := slots[len(slots)-1]
	assert.Equal(t, "17:00", types.FormatMinutes(last.Start))
	assert.Equal(t, []int64{1}, last.StaffIDs())

	for _, s := range slots {
		if s.Start == minutes(t, "16:30") {
			assert.Equal(t, []GridStaff{{StaffID: 1, DurationMinutes: 60}, {StaffID: 2, DurationMinutes: 90}}, s.Staff)
		}
	}
}

func TestGenerateGridIsDeterministic(t *testing.T) {
	date := day(t, "2030-01-07")
	f := gridFixture()
	f.capable(3, 1)
	f.appointment(2, 1, at(t, date, "13:00"), at(t, date, "14:30"))
	f.leave(3, date, date)
	idx := f.index()
	in := GridInput{Date: date, ServiceID: 1, PeopleCount: 1, Now: day(t, "2030-01-01")}

	first := GenerateGrid(idx, in)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, GenerateGrid(idx, in))
	}
	for _, s := range first {
		assert.NotContains(t, s.StaffIDs(), int64(3))
	}
}

func TestGenerateGridUnknownService(t *testing.T) {
	idx := gridFixture().index()
	assert.Empty(t, GenerateGrid(idx, GridInput{Date: day(t, "2030-01-07"), ServiceID: 42, Now: day(t, "2030-01-01")}))
}
