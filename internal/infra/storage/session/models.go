package session

import (
	"encoding/json"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// selectedSlotJSON формат колонки selected_slot (JSONB)
type selectedSlotJSON struct {
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	ServiceID       int64   `json:"serviceId"`
	StaffIDs        []int64 `json:"staffIds"`
	PeopleCount     int     `json:"peopleCount"`
	DurationMinutes int     `json:"durationMinutes"`
	LockToken       string  `json:"lockToken"`
}

// customerInfoJSON формат колонки customer_info (JSONB)
type customerInfoJSON struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

func encodeSlot(slot *domain.SelectedSlot) ([]byte, error) {
	if slot == nil {
		return nil, nil
	}
	return json.Marshal(selectedSlotJSON{
		Date:            types.FormatDate(slot.Date),
		StartTime:       slot.StartTime.String(),
		ServiceID:       slot.ServiceID,
		StaffIDs:        slot.StaffIDs,
		PeopleCount:     slot.PeopleCount,
		DurationMinutes: slot.DurationMinutes,
		LockToken:       slot.LockToken,
	})
}

func decodeSlot(raw []byte) (*domain.SelectedSlot, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var row selectedSlotJSON
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}

	date, err := types.ParseDate(row.Date)
	if err != nil {
		return nil, err
	}
	start, err := types.NewTimeStringFromString(row.StartTime)
	if err != nil {
		return nil, err
	}

	return &domain.SelectedSlot{
		Date:            date,
		StartTime:       start,
		ServiceID:       row.ServiceID,
		StaffIDs:        row.StaffIDs,
		PeopleCount:     row.PeopleCount,
		DurationMinutes: row.DurationMinutes,
		LockToken:       row.LockToken,
	}, nil
}

func encodeCustomer(info *domain.CustomerInfo) ([]byte, error) {
	if info == nil {
		return nil, nil
	}
	return json.Marshal(customerInfoJSON{Name: info.Name, Phone: info.Phone, Email: info.Email})
}

func decodeCustomer(raw []byte) (*domain.CustomerInfo, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var row customerInfoJSON
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, err
	}
	return &domain.CustomerInfo{Name: row.Name, Phone: row.Phone, Email: row.Email}, nil
}
