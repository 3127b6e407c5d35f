package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ScanDates classifies every date of [from, to] as available or unavailable for all groups.
// A date is available only when every group is feasible on it; groups are checked
// independently of each other. Dates before the salon-local today are unavailable.
func ScanDates(idx *Index, from, to time.Time, groups []PersonGroup, now time.Time) DatesResult {
	today := types.DateOf(now.In(idx.Location()))
	result := DatesResult{
		Available:   make([]time.Time, 0),
		Unavailable: make([]time.Time, 0),
	}

	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		if date.Before(today) || !allGroupsFeasible(idx, groups, date) {
			result.Unavailable = append(result.Unavailable, date)
			continue
		}
		result.Available = append(result.Available, date)
	}

	return result
}

func allGroupsFeasible(idx *Index, groups []PersonGroup, date time.Time) bool {
	if len(groups) == 0 {
		return false
	}
	for _, g := range groups {
		if !groupFeasible(idx, g.ServiceIDs, date) {
			return false
		}
	}
	return true
}

// groupFeasible is a necessary-condition check: some staff member capable of the most
// restrictive block has a contiguous free window long enough for the whole chain
func groupFeasible(idx *Index, serviceIDs []int64, date time.Time) bool {
	blocks := BuildBlocks(serviceIDs, idx)
	if len(blocks) == 0 {
		return false
	}

	var restrictive []int64
	for i, b := range blocks {
		capable := idx.StaffCapableOfAll(b.ServiceIDs())
		if len(capable) == 0 {
			return false
		}
		if i == 0 || len(capable) < len(restrictive) {
			restrictive = capable
		}
	}

	need := MinChainDuration(blocks, idx)
	for _, staffID := range restrictive {
		if idx.OnLeave(staffID, date) {
			continue
		}
		hours, ok := idx.Hours(staffID, date)
		if !ok {
			continue
		}
		if longestGap(hours, idx.Appointments(staffID, date)) >= need {
			return true
		}
	}

	return false
}

// longestGap returns the longest free window inside working hours, spans ordered by start
func longestGap(hours domain.WorkingHours, spans []Span) int {
	start, end := hours.StartMinutes(), hours.EndMinutes()
	cursor := start
	longest := 0

	for _, span := range spans {
		if span.End <= cursor {
			continue
		}
		if span.Start >= end {
			break
		}
		if gap := min(span.Start, end) - cursor; gap > longest {
			longest = gap
		}
		cursor = max(cursor, span.End)
		if cursor >= end {
			return longest
		}
	}

	if gap := end - cursor; gap > longest {
		longest = gap
	}
	return longest
}
