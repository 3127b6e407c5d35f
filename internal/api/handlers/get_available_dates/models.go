package get_available_dates

import (
	"time"

	getAvailableDates "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_dates"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// DatesRequest HTTP request model
type DatesRequest struct {
	StartDate string         `json:"startDate"` // "2025-10-15"
	EndDate   string         `json:"endDate"`
	Groups    []GroupRequest `json:"groups"`
}

// GroupRequest услуги одного участника визита
type GroupRequest struct {
	PersonID   string  `json:"personId,omitempty"`
	ServiceIDs []int64 `json:"serviceIds"`
}

// DatesResponse HTTP response model
type DatesResponse struct {
	AvailableDates   []string `json:"availableDates"`
	UnavailableDates []string `json:"unavailableDates"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Некорректная дата передается пустой и отклоняется use case
func (r *DatesRequest) ToUseCaseRequest(token string) *getAvailableDates.Request {

	groups := make([]getAvailableDates.Group, len(r.Groups))
	for i, g := range r.Groups {
		groups[i] = getAvailableDates.Group{PersonID: g.PersonID, ServiceIDs: g.ServiceIDs}
	}

	return &getAvailableDates.Request{
		Token:     token,
		StartDate: types.DateOrZero(r.StartDate),
		EndDate:   types.DateOrZero(r.EndDate),
		Groups:    groups,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *DatesResponse {
	return &DatesResponse{
		AvailableDates:   formatDates(resp.AvailableDates),
		UnavailableDates: formatDates(resp.UnavailableDates),
	}
}

func formatDates(dates []time.Time) []string {
	result := make([]string, len(dates))
	for i, d := range dates {
		result[i] = types.FormatDate(d)
	}
	return result
}
