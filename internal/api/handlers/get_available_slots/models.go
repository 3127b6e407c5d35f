package get_available_slots

import (
	"net/url"
	"strconv"
	"time"

	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date               string          `json:"date"`
	ServiceID          int64           `json:"serviceId"`
	PeopleCount        int             `json:"peopleCount"`
	Slots              []AvailableSlot `json:"slots"`
	LockToken          string          `json:"lockToken"`
	LockTokenExpiresAt time.Time       `json:"lockTokenExpiresAt"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime      string        `json:"startTime"`
	AvailableStaff int           `json:"availableStaff"`
	Staff          []StaffOption `json:"staff"`
}

// StaffOption свободный мастер и длительность услуги у него
type StaffOption struct {
	StaffID         int64 `json:"staffId"`
	DurationMinutes int   `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		staff := make([]StaffOption, len(slot.Staff))
		for j, s := range slot.Staff {
			staff[j] = StaffOption{StaffID: s.StaffID, DurationMinutes: s.DurationMinutes}
		}
		slots[i] = AvailableSlot{
			StartTime:      slot.StartTime.String(),
			AvailableStaff: slot.AvailableStaff,
			Staff:          staff,
		}
	}

	return &AvailableSlotsResponse{
		Date:               types.FormatDate(resp.Date),
		ServiceID:          resp.ServiceID,
		PeopleCount:        resp.PeopleCount,
		Slots:              slots,
		LockToken:          resp.LockToken,
		LockTokenExpiresAt: resp.LockTokenExpiresAt,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
// Значения не проверяются: use case валидирует их после проверки сессии
func ToUseCaseRequest(token string, query url.Values) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{
		Token:       token,
		Date:        types.DateOrZero(query.Get("date")),
		ServiceID:   queryInt(query, "serviceId"),
		PeopleCount: int(queryInt(query, "peopleCount")),
	}
}

// queryInt отсутствующий параметр дает 0, нечисловой -1
func queryInt(query url.Values, key string) int64 {
	raw := query.Get(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return -1
	}
	return v
}
