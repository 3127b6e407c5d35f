package availability

import (
	"slices"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// GenerateGrid lists start times of one service on one date with at least PeopleCount
// distinct staff available. Slots are ordered by start ascending, then by the number of
// available staff descending.
func GenerateGrid(idx *Index, in GridInput) []GridSlot {
	service, ok := idx.Service(in.ServiceID)
	if !ok {
		return nil
	}
	peopleCount := in.PeopleCount
	if peopleCount < 1 {
		peopleCount = domain.DefaultPeopleCount
	}

	minStart, ok := earliestAllowedStart(idx, in.Date, in.Now)
	if !ok {
		return nil
	}

	capable := idx.CapableStaff(service.ID)
	first, last, ok := gridBounds(idx, service, capable, in.Date)
	if !ok {
		return nil
	}

	step := idx.Salon().Settings.SlotIntervalMinutes
	if step <= 0 {
		step = domain.DefaultSlotIntervalMinutes
	}

	var slots []GridSlot
	for start := first; start <= last; start += step {
		if start < minStart {
			continue
		}

		var staff []GridStaff
		for _, ss := range capable {
			duration := ss.Duration(service)
			if staffAvailable(idx, service, ss.StaffID, in, start, start+duration) {
				staff = append(staff, GridStaff{StaffID: ss.StaffID, DurationMinutes: duration})
			}
		}

		if len(staff) < peopleCount {
			continue
		}
		if left, limited := remainingCapacity(service, in.Date, start, start+service.DurationMinutes, idx); limited && left < peopleCount {
			continue
		}
		slots = append(slots, GridSlot{Start: start, Staff: staff})
	}

	slices.SortStableFunc(slots, func(a, b GridSlot) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return len(b.Staff) - len(a.Staff)
	})

	return slots
}

// earliestAllowedStart returns the first minute bookable on date. Past dates have none;
// today is bounded by now plus the salon's minimum notice.
func earliestAllowedStart(idx *Index, date, now time.Time) (int, bool) {
	localNow := now.In(idx.Location())
	today := types.DateOf(localNow)

	switch {
	case date.Before(today):
		return 0, false
	case date.Equal(today):
		return localNow.Hour()*60 + localNow.Minute() + idx.Salon().Settings.MinBookingNoticeMinutes, true
	default:
		return 0, true
	}
}

// gridBounds returns the earliest working start and the latest start that still fits,
// over all capable staff working on date
func gridBounds(idx *Index, service *domain.Service, capable []domain.StaffService, date time.Time) (int, int, bool) {
	first, last := -1, -1
	for _, ss := range capable {
		if idx.OnLeave(ss.StaffID, date) {
			continue
		}
		hours, ok := idx.Hours(ss.StaffID, date)
		if !ok {
			continue
		}
		latest := hours.EndMinutes() - ss.Duration(service)
		if latest < hours.StartMinutes() {
			continue
		}
		if first == -1 || hours.StartMinutes() < first {
			first = hours.StartMinutes()
		}
		if latest > last {
			last = latest
		}
	}
	return first, last, first != -1
}

func staffAvailable(idx *Index, service *domain.Service, staffID int64, in GridInput, start, end int) bool {
	if idx.OnLeave(staffID, in.Date) {
		return false
	}
	hours, ok := idx.Hours(staffID, in.Date)
	if !ok || !hours.Contains(start, end) {
		return false
	}
	if !idx.IsFree(staffID, in.Date, start, end) {
		return false
	}
	if !hasCapacity(service, in.Date, start, end, idx) {
		return false
	}
	return ConflictingLock(in.Locks, in.OwnLockID, in.Date, start, end, in.Now) == nil
}

// ConflictingLock returns an unexpired lock other than ownLockID that overlaps [start, end)
// on date, or nil
func ConflictingLock(locks []*domain.TemporaryLock, ownLockID string, date time.Time, start, end int, now time.Time) *domain.TemporaryLock {
	for _, l := range locks {
		if l.ID == ownLockID || !l.IsActive(now) || !l.Date.Equal(date) {
			continue
		}
		if l.StartMinutes() < end && l.EndMinutes() > start {
			return l
		}
	}
	return nil
}
