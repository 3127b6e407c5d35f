package lock_slot

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

// validateRequest проверяет форму слота
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required in YYYY-MM-DD form", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required in HH:MM form", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if len(req.StaffIDs) == 0 || len(req.StaffIDs) > domain.MaxPeoplePerBooking {
		return fmt.Errorf("%w: between 1 and %d staff ids required", ErrInvalidInput, domain.MaxPeoplePerBooking)
	}
	seen := make(map[int64]struct{}, len(req.StaffIDs))
	for _, id := range req.StaffIDs {
		if id <= 0 {
			return fmt.Errorf("%w: staffId must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: staff id=%d repeated", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if req.PeopleCount < 1 {
		return fmt.Errorf("%w: peopleCount must be at least 1", ErrInvalidInput)
	}
	if req.PeopleCount != len(req.StaffIDs) {
		return fmt.Errorf("%w: peopleCount=%d does not match %d staff ids", ErrInvalidInput, req.PeopleCount, len(req.StaffIDs))
	}

	if req.LockToken != "" {
		if _, err := uuid.Parse(req.LockToken); err != nil {
			return fmt.Errorf("%w: malformed lockToken", ErrInvalidInput)
		}
	}

	return nil
}

// slotDuration возвращает самую длинную длительность услуги среди выбранных мастеров
// Каждый мастер обязан выполнять услугу
func slotDuration(idx *availability.Index, service *domain.Service, staffIDs []int64) (int, error) {
	longest := 0
	for _, staffID := range staffIDs {
		ss, ok := idx.StaffService(staffID, service.ID)
		if !ok {
			return 0, fmt.Errorf("%w: staff id=%d, service id=%d", ErrStaffNotCapable, staffID, service.ID)
		}
		longest = max(longest, ss.Duration(service))
	}
	return longest, nil
}
