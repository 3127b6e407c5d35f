package confirm_booking

import (
	"time"

	confirmBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/confirm_booking"
)

// ConfirmRequest HTTP request model
type ConfirmRequest struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

// ConfirmResponse HTTP response model
type ConfirmResponse struct {
	Token        string                `json:"token"`
	State        string                `json:"state"`
	Customer     CustomerResponse      `json:"customer"`
	Appointments []AppointmentResponse `json:"appointments"`
}

type CustomerResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
	Returning bool    `json:"returning"`
}

type AppointmentResponse struct {
	ID        int64     `json:"id"`
	StaffID   int64     `json:"staffId"`
	ServiceID int64     `json:"serviceId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Price     string    `json:"price"` // "350.00"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmRequest) ToUseCaseRequest(token string) *confirmBooking.Request {
	return &confirmBooking.Request{
		Token: token,
		Name:  r.Name,
		Phone: r.Phone,
		Email: r.Email,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmBooking.Response) *ConfirmResponse {
	appointments := make([]AppointmentResponse, len(resp.Appointments))
	for i, a := range resp.Appointments {
		appointments[i] = AppointmentResponse{
			ID:        a.ID,
			StaffID:   a.StaffID,
			ServiceID: a.ServiceID,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			Price:     a.Price.StringFixed(2),
		}
	}

	return &ConfirmResponse{
		Token: resp.Token,
		State: string(resp.State),
		Customer: CustomerResponse{
			ID:        resp.Customer.ID,
			Name:      resp.Customer.Name,
			Phone:     resp.Customer.Phone,
			Email:     resp.Customer.Email,
			Returning: resp.Customer.Returning,
		},
		Appointments: appointments,
	}
}
