package availability

import (
	"slices"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Span is an occupied interval of one staff member on one local date, in minutes since midnight
type Span struct {
	AppointmentID int64
	StaffID       int64
	ServiceID     int64
	Start         int
	End           int
}

// Overlaps reports whether the span intersects [start, end). Touching is not overlapping.
func (s Span) Overlaps(start, end int) bool {
	return s.Start < end && s.End > start
}

type staffDayKey struct {
	staffID   int64
	dayOfWeek int
}

type staffDateKey struct {
	staffID int64
	date    string
}

// IndexInput is the raw data an Index is built from
type IndexInput struct {
	Salon         *domain.Salon
	Services      []*domain.Service
	Categories    []*domain.Category
	StaffServices []*domain.StaffService
	WorkingHours  []*domain.WorkingHours
	Appointments  []*domain.Appointment
	Leaves        []*domain.Leave
}

// Index is the per-request, read-only lookup structure of the availability engine.
// It is built once per request and never shared between requests.
type Index struct {
	salon *domain.Salon
	loc   *time.Location

	services       map[int64]*domain.Service
	categories     map[int64]*domain.Category
	staffByService map[int64][]domain.StaffService
	workingHours   map[staffDayKey]domain.WorkingHours
	byStaffDate    map[staffDateKey][]Span
	byDate         map[string][]Span
	leaves         map[int64][]domain.Leave
	staffIDs       []int64
}

// NewIndex builds the lookup maps. Working hours of every capable staff member get the
// salon default injected for each day of week without an explicit row.
func NewIndex(in IndexInput) *Index {
	salon := in.Salon
	if salon == nil {
		salon = &domain.Salon{Settings: domain.DefaultSalonSettings()}
	}

	idx := &Index{
		salon:          salon,
		loc:            salon.Location(),
		services:       make(map[int64]*domain.Service, len(in.Services)),
		categories:     make(map[int64]*domain.Category, len(in.Categories)),
		staffByService: make(map[int64][]domain.StaffService),
		workingHours:   make(map[staffDayKey]domain.WorkingHours),
		byStaffDate:    make(map[staffDateKey][]Span),
		byDate:         make(map[string][]Span),
		leaves:         make(map[int64][]domain.Leave),
	}

	for _, s := range in.Services {
		idx.services[s.ID] = s
	}
	for _, c := range in.Categories {
		idx.categories[c.ID] = c
	}

	staffSet := make(map[int64]struct{})
	for _, ss := range in.StaffServices {
		if !ss.IsActive {
			continue
		}
		idx.staffByService[ss.ServiceID] = append(idx.staffByService[ss.ServiceID], *ss)
		staffSet[ss.StaffID] = struct{}{}
	}
	for serviceID := range idx.staffByService {
		slices.SortFunc(idx.staffByService[serviceID], func(a, b domain.StaffService) int {
			return compareInt64(a.StaffID, b.StaffID)
		})
	}

	for staffID := range staffSet {
		idx.staffIDs = append(idx.staffIDs, staffID)
	}
	slices.Sort(idx.staffIDs)

	for _, wh := range in.WorkingHours {
		idx.workingHours[staffDayKey{wh.StaffID, wh.DayOfWeek}] = *wh
	}
	for _, staffID := range idx.staffIDs {
		for day := 0; day < 7; day++ {
			key := staffDayKey{staffID, day}
			if _, ok := idx.workingHours[key]; !ok {
				idx.workingHours[key] = salon.DefaultHours(staffID, day)
			}
		}
	}

	for _, a := range in.Appointments {
		if !a.OccupiesTime() {
			continue
		}
		idx.addAppointment(a)
	}
	for key := range idx.byStaffDate {
		sortSpans(idx.byStaffDate[key])
	}
	for key := range idx.byDate {
		sortSpans(idx.byDate[key])
	}

	for _, l := range in.Leaves {
		idx.leaves[l.StaffID] = append(idx.leaves[l.StaffID], *l)
	}

	return idx
}

func (idx *Index) addAppointment(a *domain.Appointment) {
	start := a.StartTime.In(idx.loc)
	end := a.EndTime.In(idx.loc)
	date := types.FormatDate(types.DateOf(start))

	startMinutes := start.Hour()*60 + start.Minute()
	endMinutes := startMinutes + int(end.Sub(start).Minutes())
	if endMinutes > 24*60 {
		endMinutes = 24 * 60
	}

	span := Span{
		AppointmentID: a.ID,
		StaffID:       a.StaffID,
		ServiceID:     a.ServiceID,
		Start:         startMinutes,
		End:           endMinutes,
	}
	key := staffDateKey{a.StaffID, date}
	idx.byStaffDate[key] = append(idx.byStaffDate[key], span)
	idx.byDate[date] = append(idx.byDate[date], span)
}

func sortSpans(spans []Span) {
	slices.SortFunc(spans, func(a, b Span) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Salon returns the salon the index was built for
func (idx *Index) Salon() *domain.Salon {
	return idx.salon
}

// Location returns the salon timezone
func (idx *Index) Location() *time.Location {
	return idx.loc
}

// Service returns service metadata
func (idx *Index) Service(id int64) (*domain.Service, bool) {
	s, ok := idx.services[id]
	return s, ok
}

// Category returns category metadata
func (idx *Index) Category(id int64) (*domain.Category, bool) {
	c, ok := idx.categories[id]
	return c, ok
}

// CapableStaff returns the capability rows of a service ordered by staff id
func (idx *Index) CapableStaff(serviceID int64) []domain.StaffService {
	return idx.staffByService[serviceID]
}

// StaffService returns the capability row of one staff member for one service
func (idx *Index) StaffService(staffID, serviceID int64) (domain.StaffService, bool) {
	for _, ss := range idx.staffByService[serviceID] {
		if ss.StaffID == staffID {
			return ss, true
		}
	}
	return domain.StaffService{}, false
}

// CanPerformAll reports whether the staff member can perform every listed service
func (idx *Index) CanPerformAll(staffID int64, serviceIDs []int64) bool {
	for _, serviceID := range serviceIDs {
		if _, ok := idx.StaffService(staffID, serviceID); !ok {
			return false
		}
	}
	return len(serviceIDs) > 0
}

// StaffCapableOfAll returns, in ascending order, staff able to perform every listed service
func (idx *Index) StaffCapableOfAll(serviceIDs []int64) []int64 {
	var result []int64
	for _, staffID := range idx.staffIDs {
		if idx.CanPerformAll(staffID, serviceIDs) {
			result = append(result, staffID)
		}
	}
	return result
}

// StaffIDs returns every staff member capable of at least one indexed service
func (idx *Index) StaffIDs() []int64 {
	return idx.staffIDs
}

// Hours returns the working hours of a staff member for the weekday of date
func (idx *Index) Hours(staffID int64, date time.Time) (domain.WorkingHours, bool) {
	wh, ok := idx.workingHours[staffDayKey{staffID, int(date.Weekday())}]
	return wh, ok
}

// Appointments returns the occupied spans of a staff member on date, ordered by start
func (idx *Index) Appointments(staffID int64, date time.Time) []Span {
	return idx.byStaffDate[staffDateKey{staffID, types.FormatDate(date)}]
}

// AppointmentsOn returns the occupied spans of all staff on date
func (idx *Index) AppointmentsOn(date time.Time) []Span {
	return idx.byDate[types.FormatDate(date)]
}

// OnLeave reports whether the staff member is on leave on date
func (idx *Index) OnLeave(staffID int64, date time.Time) bool {
	for _, l := range idx.leaves[staffID] {
		if l.Covers(date) {
			return true
		}
	}
	return false
}

// IsFree reports whether the staff member has no occupied span overlapping [start, end) on date
func (idx *Index) IsFree(staffID int64, date time.Time, start, end int) bool {
	for _, span := range idx.Appointments(staffID, date) {
		if span.Overlaps(start, end) {
			return false
		}
	}
	return true
}
