package lock_slot

import (
	"time"

	lockSlot "github.com/m04kA/SMC-SalonBooking/internal/usecase/lock_slot"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// LockRequest HTTP request model
type LockRequest struct {
	Slot      SlotRequest `json:"slot"`
	LockToken string      `json:"lockToken,omitempty"` // токен из выдачи слотов
}

// SlotRequest выбранный слот
type SlotRequest struct {
	Date        string  `json:"date"`      // "2025-10-15"
	StartTime   string  `json:"startTime"` // "10:00"
	ServiceID   int64   `json:"serviceId"`
	StaffIDs    []int64 `json:"staffIds"`
	PeopleCount int     `json:"peopleCount"`
}

// LockResponse HTTP response model
type LockResponse struct {
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	ServiceID       int64     `json:"serviceId"`
	StaffIDs        []int64   `json:"staffIds"`
	PeopleCount     int       `json:"peopleCount"`
	DurationMinutes int       `json:"durationMinutes"`
	LockToken       string    `json:"lockToken"`
	ExpiresAt       time.Time `json:"expiresAt"`
	Refreshed       bool      `json:"refreshed"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Форма слота проверяется use case после проверки сессии
func (r *LockRequest) ToUseCaseRequest(token string) *lockSlot.Request {
	return &lockSlot.Request{
		Token:       token,
		Date:        types.DateOrZero(r.Slot.Date),
		StartTime:   types.TimeStringOrRaw(r.Slot.StartTime),
		ServiceID:   r.Slot.ServiceID,
		StaffIDs:    r.Slot.StaffIDs,
		PeopleCount: r.Slot.PeopleCount,
		LockToken:   r.LockToken,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *lockSlot.Response) *LockResponse {
	return &LockResponse{
		Date:            types.FormatDate(resp.Date),
		StartTime:       resp.StartTime.String(),
		ServiceID:       resp.ServiceID,
		StaffIDs:        resp.StaffIDs,
		PeopleCount:     resp.PeopleCount,
		DurationMinutes: resp.DurationMinutes,
		LockToken:       resp.LockToken,
		ExpiresAt:       resp.ExpiresAt,
		Refreshed:       resp.Refreshed,
	}
}
