package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Token       string    // токен сессии бронирования
	Date        time.Time // дата (без времени)
	ServiceID   int64     // ID услуги
	PeopleCount int       // количество человек, 0 означает 1
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date        time.Time
	ServiceID   int64
	PeopleCount int
	Slots       []Slot

	// Токен, который можно предъявить при блокировке слота. Не сохраняется в БД.
	LockToken          string
	LockTokenExpiresAt time.Time
}

// Slot модель временного слота
type Slot struct {
	StartTime      types.TimeString // время начала слота (например, "10:00")
	AvailableStaff int              // сколько мастеров свободно
	Staff          []StaffOption    // свободные мастера по возрастанию ID
}

// StaffOption мастер, свободный в слоте, с его длительностью услуги
type StaffOption struct {
	StaffID         int64
	DurationMinutes int
}
