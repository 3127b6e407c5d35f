package domain

import "github.com/shopspring/decimal"

// Service is a bookable salon service
type Service struct {
	ID               int64
	SalonID          int64
	Name             string
	DurationMinutes  int
	Price            decimal.Decimal
	CategoryID       *int64
	BufferOverride   *int // minutes of pause after this service when it ends a block
	CapacityOverride *int // max concurrently overlapping appointments of this service
	IsActive         bool
}

// Category groups services and carries scheduling defaults for them
type Category struct {
	ID                 int64
	SalonID            int64
	Name               string
	SequentialRequired bool // services of this category are done back-to-back by one staff member
	BufferMinutes      *int
	Capacity           *int
}

// Staff is a salon employee
type Staff struct {
	ID       int64
	SalonID  int64
	Name     string
	IsActive bool
}

// StaffService is the capability edge "staff can perform service"
type StaffService struct {
	StaffID          int64
	ServiceID        int64
	DurationOverride *int
	PriceOverride    *decimal.Decimal
	IsActive         bool
}

// Duration returns the staff-specific duration, or the service default
func (ss *StaffService) Duration(service *Service) int {
	if ss.DurationOverride != nil && *ss.DurationOverride > 0 {
		return *ss.DurationOverride
	}
	if service != nil && service.DurationMinutes > 0 {
		return service.DurationMinutes
	}
	return DefaultServiceDurationMinutes
}

// Price returns the staff-specific price, or the service price
func (ss *StaffService) Price(service *Service) decimal.Decimal {
	if ss.PriceOverride != nil {
		return *ss.PriceOverride
	}
	if service == nil {
		return decimal.Zero
	}
	return service.Price
}
