package get_available_dates

import "time"

// Request модель запроса на проверку дат
type Request struct {
	Token     string    // токен сессии бронирования
	StartDate time.Time // первая дата периода (включительно)
	EndDate   time.Time // последняя дата периода (включительно)
	Groups    []Group   // услуги каждого участника визита
}

// Group упорядоченный список услуг одного участника
type Group struct {
	PersonID   string
	ServiceIDs []int64
}

// Response модель ответа: обе последовательности по возрастанию
type Response struct {
	AvailableDates   []time.Time
	UnavailableDates []time.Time
}
