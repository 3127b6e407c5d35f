package sessions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// SalonRepository интерфейс каталога салона
type SalonRepository interface {
	GetSalon(ctx context.Context, salonID int64) (*domain.Salon, error)
	ListServices(ctx context.Context, salonID int64) ([]*domain.Service, error)
	ListCategories(ctx context.Context, salonID int64) ([]*domain.Category, error)
	ListStaff(ctx context.Context, salonID int64) ([]*domain.Staff, error)
}

// SessionRepository интерфейс репозитория сессий бронирования
type SessionRepository interface {
	Create(ctx context.Context, s *domain.BookingSession) (*domain.BookingSession, error)
	GetByToken(ctx context.Context, token string) (*domain.BookingSession, error)
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
