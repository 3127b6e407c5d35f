package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса и подставляет значения по умолчанию
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required in YYYY-MM-DD form", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.PeopleCount == 0 {
		req.PeopleCount = domain.DefaultPeopleCount
	}
	if req.PeopleCount < 1 || req.PeopleCount > domain.MaxPeoplePerBooking {
		return fmt.Errorf("%w: peopleCount must be between 1 and %d", ErrInvalidInput, domain.MaxPeoplePerBooking)
	}

	return nil
}
