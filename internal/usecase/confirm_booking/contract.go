package confirm_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

// SessionRepository интерфейс репозитория сессий бронирования
type SessionRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.BookingSession, error)
	MarkConfirmed(ctx context.Context, token string, info *domain.CustomerInfo, now time.Time) error
}

// LockRepository интерфейс репозитория временных блокировок
type LockRepository interface {
	GetActive(ctx context.Context, id string, salonID int64, now time.Time) (*domain.TemporaryLock, error)
	Delete(ctx context.Context, id string) error
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetBySalonAndPhone(ctx context.Context, salonID int64, phone string) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	UpdateContact(ctx context.Context, id int64, name string, email *string, now time.Time) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	HasStaffOverlap(ctx context.Context, staffIDs []int64, start, end time.Time) (bool, error)
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
}

// IndexLoader строит индекс каталога салона на дату
type IndexLoader interface {
	Load(ctx context.Context, q availability.Query) (*availability.Index, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics учёт подтверждений
type Metrics interface {
	RecordConfirmation(result string)
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
