package lock_slot

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на блокировку слота
type Request struct {
	Token       string           // токен сессии бронирования
	Date        time.Time        // дата слота
	StartTime   types.TimeString // время начала, "10:00"
	ServiceID   int64
	StaffIDs    []int64 // по одному мастеру на человека
	PeopleCount int
	LockToken   string // токен из выдачи слотов (опционально)
}

// Response модель ответа с удерживаемым слотом
type Response struct {
	Date            time.Time
	StartTime       types.TimeString
	ServiceID       int64
	StaffIDs        []int64
	PeopleCount     int
	DurationMinutes int
	LockToken       string
	ExpiresAt       time.Time
	Refreshed       bool // тот же слот уже был заблокирован, продлён срок
}
