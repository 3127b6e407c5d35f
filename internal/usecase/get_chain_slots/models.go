package get_chain_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на поиск цепочек услуг
type Request struct {
	Token  string
	Date   time.Time
	Groups []Group
}

// Group упорядоченный список услуг одного участника
type Group struct {
	PersonID   string
	ServiceIDs []int64
}

// Response цепочки для каждого участника в порядке групп запроса
type Response struct {
	Date   time.Time
	People []Person
}

// Person варианты начала визита одного участника по возрастанию времени
type Person struct {
	PersonID string
	Slots    []ChainSlot
}

// ChainSlot цепочка услуг одного участника
type ChainSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	StaffID   int64 // мастер первого блока
	Services  []ServiceWindow
}

// ServiceWindow услуга цепочки с мастером и временем
type ServiceWindow struct {
	ServiceID int64
	StaffID   int64
	StartTime types.TimeString
	EndTime   types.TimeString
}
