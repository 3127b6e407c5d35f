package confirm_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// normalizeRequest проверяет контактные данные и убирает лишние пробелы
func normalizeRequest(req *Request) (*domain.CustomerInfo, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxCustomerNameLength {
		return nil, fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(phone) > domain.MaxCustomerPhoneLength {
		return nil, fmt.Errorf("%w: phone is longer than %d characters", ErrInvalidInput, domain.MaxCustomerPhoneLength)
	}

	info := &domain.CustomerInfo{Name: name, Phone: phone}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != "" {
			if _, err := mail.ParseAddress(email); err != nil {
				return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
			}
			info.Email = &email
		}
	}

	return info, nil
}
