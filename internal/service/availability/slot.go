package availability

import (
	"fmt"
	"time"
)

// SlotCheck a concrete slot chosen by a client: one start time shared by several staff
type SlotCheck struct {
	Date      time.Time
	ServiceID int64
	Start     int // minutes since midnight, salon local time
	StaffIDs  []int64
	Now       time.Time
}

// CheckSlot re-verifies a chosen slot with the rules the grid applies per staff member:
// bookable time, leave, working hours, existing appointments and capacity for every
// chosen staff at once. Foreign locks are checked by the caller against fresh rows.
// Returns ErrSlotUnavailable with the reason.
func CheckSlot(idx *Index, in SlotCheck) error {
	service, ok := idx.Service(in.ServiceID)
	if !ok {
		return fmt.Errorf("%w: unknown service %d", ErrSlotUnavailable, in.ServiceID)
	}

	minStart, ok := earliestAllowedStart(idx, in.Date, in.Now)
	if !ok || in.Start < minStart {
		return fmt.Errorf("%w: starts before the earliest bookable time", ErrSlotUnavailable)
	}

	longest := 0
	for _, staffID := range in.StaffIDs {
		ss, ok := idx.StaffService(staffID, service.ID)
		if !ok {
			return fmt.Errorf("%w: staff %d cannot perform service %d", ErrSlotUnavailable, staffID, service.ID)
		}
		end := in.Start + ss.Duration(service)

		if idx.OnLeave(staffID, in.Date) {
			return fmt.Errorf("%w: staff %d is on leave", ErrSlotUnavailable, staffID)
		}
		hours, ok := idx.Hours(staffID, in.Date)
		if !ok || !hours.Contains(in.Start, end) {
			return fmt.Errorf("%w: outside working hours of staff %d", ErrSlotUnavailable, staffID)
		}
		if !idx.IsFree(staffID, in.Date, in.Start, end) {
			return fmt.Errorf("%w: staff %d is booked", ErrSlotUnavailable, staffID)
		}
		if end-in.Start > longest {
			longest = end - in.Start
		}
	}

	if left, limited := remainingCapacity(service, in.Date, in.Start, in.Start+longest, idx); limited && left < len(in.StaffIDs) {
		return fmt.Errorf("%w: capacity of service %d exhausted", ErrSlotUnavailable, service.ID)
	}

	return nil
}
