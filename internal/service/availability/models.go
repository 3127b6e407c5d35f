package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// PersonGroup ordered services requested for one person
type PersonGroup struct {
	PersonID   string
	ServiceIDs []int64
}

// Query describes what the Loader must read to build an Index
type Query struct {
	SalonID    int64
	From       time.Time // first calendar date, inclusive
	To         time.Time // last calendar date, inclusive
	ServiceIDs []int64
}

// DatesResult result of the dates feasibility scan, both lists ascending
type DatesResult struct {
	Available   []time.Time
	Unavailable []time.Time
}

// GridInput parameters of a slot grid for one date and one service
type GridInput struct {
	Date        time.Time
	ServiceID   int64
	PeopleCount int
	Locks       []*domain.TemporaryLock
	OwnLockID   string // lock of the calling session, never blocks its own listing
	Now         time.Time
}

// GridStaff staff member available at a grid slot with its own duration
type GridStaff struct {
	StaffID         int64
	DurationMinutes int
}

// GridSlot a start time with the staff available at it, staff ascending by id
type GridSlot struct {
	Start int
	Staff []GridStaff
}

// StaffIDs ids of the available staff
func (s GridSlot) StaffIDs() []int64 {
	ids := make([]int64, 0, len(s.Staff))
	for _, st := range s.Staff {
		ids = append(ids, st.StaffID)
	}
	return ids
}

// Combination one chain per person that can be booked together
type Combination struct {
	Chains        []*Chain
	ParallelScore float64
}

// ChainSlot a bookable chain start for one person
type ChainSlot struct {
	Start    int
	End      int
	StaffID  int64 // staff of the first block
	Services []ChainService
}

// ChainService one service of a chain slot with its staff and window
type ChainService struct {
	ServiceID int64
	StaffID   int64
	Start     int
	End       int
}

// PersonSlots chain slots of one person, ascending by start
type PersonSlots struct {
	PersonID string
	Slots    []ChainSlot
}
