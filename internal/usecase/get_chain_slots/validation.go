package get_chain_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required in YYYY-MM-DD form", ErrInvalidInput)
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
func validateServices(idx *availability.Index, groups []Group) error {
	for _, g := range groups {
		for _, id := range g.ServiceIDs {
			service, ok := idx.Service(id)
			if !ok || !service.IsActive {
				return fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
			}
		}
	}
	return nil
}
