package confirm_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модель запроса на подтверждение бронирования
type Request struct {
	Token string
	Name  string
	Phone string
	Email *string
}

// Response модель ответа с созданными записями
type Response struct {
	Token        string
	State        domain.SessionState
	Customer     Customer
	Appointments []Appointment
}

// Customer клиент, на которого оформлены записи
type Customer struct {
	ID        int64
	Name      string
	Phone     string
	Email     *string
	Returning bool // клиент уже был в салоне
}

// Appointment созданная запись
type Appointment struct {
	ID        int64
	StaffID   int64
	ServiceID int64
	StartTime time.Time
	EndTime   time.Time
	Price     decimal.Decimal
}

// FromDomainAppointment конвертирует доменную запись в модель ответа
func FromDomainAppointment(a *domain.Appointment) Appointment {
	return Appointment{
		ID:        a.ID,
		StaffID:   a.StaffID,
		ServiceID: a.ServiceID,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		Price:     a.Price,
	}
}
