package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Anchors enumerates chain starts every AnchorStepMinutes inside the working hours of each
// staff member capable of serviceIDs, staff ascending. At most MaxAnchors are returned.
func Anchors(idx *Index, date time.Time, serviceIDs []int64) []Anchor {
	var anchors []Anchor

	for _, staffID := range idx.StaffCapableOfAll(serviceIDs) {
		if idx.OnLeave(staffID, date) {
			continue
		}
		hours, ok := idx.Hours(staffID, date)
		if !ok {
			continue
		}
		for minute := hours.StartMinutes(); minute < hours.EndMinutes(); minute += domain.AnchorStepMinutes {
			if len(anchors) >= domain.MaxAnchors {
				return anchors
			}
			anchors = append(anchors, Anchor{StaffID: staffID, Start: minute})
		}
	}

	return anchors
}
