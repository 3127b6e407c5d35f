package lock_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

// SessionRepository интерфейс репозитория сессий бронирования
type SessionRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.BookingSession, error)
	UpdateSelectedSlot(ctx context.Context, token string, slot *domain.SelectedSlot, from []domain.SessionState, now time.Time) error
}

// LockRepository интерфейс репозитория временных блокировок
type LockRepository interface {
	Create(ctx context.Context, l *domain.TemporaryLock) (*domain.TemporaryLock, error)
	GetActive(ctx context.Context, id string, salonID int64, now time.Time) (*domain.TemporaryLock, error)
	ListActiveByDate(ctx context.Context, salonID int64, date time.Time, now time.Time) ([]*domain.TemporaryLock, error)
	ExtendExpiry(ctx context.Context, id string, expiresAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	HasStaffOverlap(ctx context.Context, staffIDs []int64, start, end time.Time) (bool, error)
}

// IndexLoader строит индекс каталога салона на дату
type IndexLoader interface {
	Load(ctx context.Context, q availability.Query) (*availability.Index, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics учёт попыток блокировки
type Metrics interface {
	RecordLock(result string)
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
