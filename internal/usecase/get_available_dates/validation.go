package get_available_dates

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required in YYYY-MM-DD form", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	// Обе границы входят в период
	days := int(req.EndDate.Sub(req.StartDate).Hours()/24) + 1
	if days > domain.MaxDatesRangeDays {
		return fmt.Errorf("%w: %d days requested, at most %d allowed", ErrRangeTooLong, days, domain.MaxDatesRangeDays)
	}

	if len(req.Groups) == 0 {
		return fmt.Errorf("%w: at least one group is required", ErrInvalidInput)
	}
	if len(req.Groups) > domain.MaxPeoplePerBooking {
		return fmt.Errorf("%w: at most %d people per booking", ErrInvalidInput, domain.MaxPeoplePerBooking)
	}

	for i, g := range req.Groups {
		if len(g.ServiceIDs) == 0 {
			return fmt.Errorf("%w: group %d has no services", ErrInvalidInput, i+1)
		}
		if len(g.ServiceIDs) > domain.MaxServicesPerPerson {
			return fmt.Errorf("%w: group %d has more than %d services", ErrInvalidInput, i+1, domain.MaxServicesPerPerson)
		}
		for _, id := range g.ServiceIDs {
			if id <= 0 {
				return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
			}
		}
	}

	return nil
}

// validateServices проверяет, что все услуги существуют в салоне и активны
func validateServices(idx *availability.Index, serviceIDs []int64) error {
	for _, id := range serviceIDs {
		service, ok := idx.Service(id)
		if !ok || !service.IsActive {
			return fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
		}
	}
	return nil
}

// uniqueServiceIDs объединяет услуги всех групп, сохраняя порядок первого появления
func uniqueServiceIDs(groups []Group) []int64 {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, g := range groups {
		for _, id := range g.ServiceIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
