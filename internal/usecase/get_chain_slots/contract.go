package get_chain_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

// SessionRepository интерфейс репозитория сессий бронирования
type SessionRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.BookingSession, error)
}

// IndexLoader строит индекс доступности салона на дату
type IndexLoader interface {
	Load(ctx context.Context, q availability.Query) (*availability.Index, error)
}

// Metrics учёт времени расчёта доступности
type Metrics interface {
	ObserveAvailability(kind string, d time.Duration)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
