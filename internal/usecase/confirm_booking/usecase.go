package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	customerRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/customer"
	lockRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/lock"
	sessionRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// Результаты подтверждения для метрик
const (
	resultConfirmed = "confirmed"
	resultLockLost  = "lock_lost"
	resultConflict  = "conflict"
	resultError     = "error"
)

// UseCase use case для подтверждения бронирования
type UseCase struct {
	sessionRepo     SessionRepository
	lockRepo        LockRepository
	customerRepo    CustomerRepository
	appointmentRepo AppointmentRepository
	loader          IndexLoader
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	lockRepo LockRepository,
	customerRepo CustomerRepository,
	appointmentRepo AppointmentRepository,
	loader IndexLoader,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:     sessionRepo,
		lockRepo:        lockRepo,
		customerRepo:    customerRepo,
		appointmentRepo: appointmentRepo,
		loader:          loader,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute подтверждает выбранный слот сессии
// Все записи создаются в одной сериализуемой транзакции; любая ошибка откатывает всё
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	switch {
	case err == nil:
		uc.metrics.RecordConfirmation(resultConfirmed)
	case errors.Is(err, ErrLockExpired):
		uc.metrics.RecordConfirmation(resultLockLost)
	case errors.Is(err, domain.ErrConflict):
		uc.metrics.RecordConfirmation(resultConflict)
	case errors.Is(err, ErrInternal):
		uc.metrics.RecordConfirmation(resultError)
	}
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Проверяем доступ к сессии
	session, err := uc.getSession(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if err := session.CheckAccess(now); err != nil {
		uc.logger.Warn("ConfirmBooking: session of salon=%d rejected: %v", session.SalonID, err)
		return nil, err
	}

	// 3. Валидация контактных данных
	info, err := normalizeRequest(req)
	if err != nil {
		uc.logger.Warn("ConfirmBooking: validation failed: %v", err)
		return nil, err
	}

	if err := session.ReadyToConfirm(); err != nil {
		uc.logger.Warn("ConfirmBooking: session of salon=%d in state %s", session.SalonID, session.State)
		return nil, err
	}
	slot := session.SelectedSlot

	uc.logger.Info("ConfirmBooking: salon=%d, service=%d, date=%s, time=%s, staff=%v",
		session.SalonID, slot.ServiceID, slot.Date.Format(domain.DateFormat), slot.StartTime, slot.StaffIDs)

	// 4. Каталог нужен для цен и часового пояса салона
	idx, err := uc.loader.Load(ctx, availability.Query{
		SalonID:    session.SalonID,
		From:       slot.Date,
		To:         slot.Date,
		ServiceIDs: []int64{slot.ServiceID},
	})
	if err != nil {
		uc.logger.Error("ConfirmBooking: failed to load catalog: %v", err)
		return nil, internalError("failed to load catalog", err)
	}
	service, ok := idx.Service(slot.ServiceID)
	if !ok || !service.IsActive {
		uc.logger.Warn("ConfirmBooking: service id=%d no longer available", slot.ServiceID)
		return nil, ErrServiceUnavailable
	}

	start := slot.StartTime.On(slot.Date, idx.Location())
	end := start.Add(time.Duration(slot.DurationMinutes) * time.Minute)

	var (
		customer     Customer
		appointments []Appointment
	)

	// 5. Всё остальное в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		customer = Customer{}
		appointments = nil

		// 5.1. Перечитываем сессию под блокировкой строки
		current, err := uc.getSession(txCtx, req.Token)
		if err != nil {
			return err
		}
		if err := current.CheckAccess(now); err != nil {
			return err
		}
		if err := current.ReadyToConfirm(); err != nil {
			return err
		}
		if current.SelectedSlot.LockToken != slot.LockToken {
			uc.logger.Warn("ConfirmBooking: selected slot of salon=%d changed concurrently", session.SalonID)
			return ErrConcurrentUpdate
		}

		// 5.2. Блокировка слота должна быть действующей
		if _, err := uc.lockRepo.GetActive(txCtx, slot.LockToken, session.SalonID, now); err != nil {
			if errors.Is(err, lockRepo.ErrLockNotFound) {
				uc.logger.Warn("ConfirmBooking: lock of salon=%d expired", session.SalonID)
				return ErrLockExpired
			}
			uc.logger.Error("ConfirmBooking: failed to get lock: %v", err)
			return internalError("failed to get lock", err)
		}

		// 5.3. Клиент по телефону
		customer, err = uc.upsertCustomer(txCtx, session.SalonID, info, now)
		if err != nil {
			return err
		}

		// 5.4. Повторная проверка пересечений
		busy, err := uc.appointmentRepo.HasStaffOverlap(txCtx, slot.StaffIDs, start, end)
		if err != nil {
			uc.logger.Error("ConfirmBooking: failed to check appointments: %v", err)
			return internalError("failed to check appointments", err)
		}
		if busy {
			uc.logger.Warn("ConfirmBooking: staff %v already booked at %s", slot.StaffIDs, start.Format(time.RFC3339))
			return ErrSlotTaken
		}

		// 5.5. По записи на каждого мастера
		for _, staffID := range slot.StaffIDs {
			price := service.Price
			if ss, ok := idx.StaffService(staffID, service.ID); ok {
				price = ss.Price(service)
			}

			created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
				SalonID:    session.SalonID,
				StaffID:    staffID,
				ServiceID:  service.ID,
				CustomerID: &customer.ID,
				StartTime:  start,
				EndTime:    end,
				Status:     domain.AppointmentBooked,
				Price:      price,
			})
			if err != nil {
				uc.logger.Error("ConfirmBooking: failed to create appointment: %v", err)
				return internalError("failed to create appointment", err)
			}
			appointments = append(appointments, FromDomainAppointment(created))
		}

		// 5.6. Блокировка израсходована
		if err := uc.lockRepo.Delete(txCtx, slot.LockToken); err != nil {
			uc.logger.Error("ConfirmBooking: failed to delete lock: %v", err)
			return internalError("failed to delete lock", err)
		}

		// 5.7. Сессия становится CONFIRMED
		if err := uc.sessionRepo.MarkConfirmed(txCtx, req.Token, info, now); err != nil {
			if errors.Is(err, sessionRepo.ErrStateChanged) {
				uc.logger.Warn("ConfirmBooking: session of salon=%d changed concurrently", session.SalonID)
				return ErrConcurrentUpdate
			}
			uc.logger.Error("ConfirmBooking: failed to update session: %v", err)
			return internalError("failed to update session", err)
		}

		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) || txmanager.IsUniqueViolation(err) {
			uc.logger.Warn("ConfirmBooking: concurrent transaction: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		}
		if !isKnown(err) {
			uc.logger.Error("ConfirmBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("ConfirmBooking: salon=%d, %d appointment(s) booked for customer id=%d (returning=%t)",
		session.SalonID, len(appointments), customer.ID, customer.Returning)

	return &Response{
		Token:        req.Token,
		State:        domain.SessionConfirmed,
		Customer:     customer,
		Appointments: appointments,
	}, nil
}

func (uc *UseCase) getSession(ctx context.Context, token string) (*domain.BookingSession, error) {
	session, err := uc.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Warn("ConfirmBooking: session not found")
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("ConfirmBooking: failed to get session: %v", err)
		return nil, internalError("failed to get session", err)
	}
	return session, nil
}

// upsertCustomer находит клиента салона по телефону и обновляет его контакты, либо создаёт нового
// Email без нового значения не затирается
func (uc *UseCase) upsertCustomer(ctx context.Context, salonID int64, info *domain.CustomerInfo, now time.Time) (Customer, error) {
	existing, err := uc.customerRepo.GetBySalonAndPhone(ctx, salonID, info.Phone)
	if err != nil && !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		uc.logger.Error("ConfirmBooking: failed to get customer: %v", err)
		return Customer{}, internalError("failed to get customer", err)
	}

	if existing != nil {
		email := info.Email
		if email == nil {
			email = existing.Email
		}
		if err := uc.customerRepo.UpdateContact(ctx, existing.ID, info.Name, email, now); err != nil {
			uc.logger.Error("ConfirmBooking: failed to update customer id=%d: %v", existing.ID, err)
			return Customer{}, internalError("failed to update customer", err)
		}
		return Customer{ID: existing.ID, Name: info.Name, Phone: info.Phone, Email: email, Returning: true}, nil
	}

	created, err := uc.customerRepo.Create(ctx, &domain.Customer{
		SalonID: salonID,
		Name:    info.Name,
		Phone:   info.Phone,
		Email:   info.Email,
	})
	if err != nil {
		uc.logger.Error("ConfirmBooking: failed to create customer: %v", err)
		return Customer{}, internalError("failed to create customer", err)
	}
	return Customer{ID: created.ID, Name: created.Name, Phone: created.Phone, Email: created.Email}, nil
}

// isKnown сообщает, что ошибка уже приведена к виду use case
func isKnown(err error) bool {
	for _, kind := range []error{domain.ErrNotFound, domain.ErrExpired, domain.ErrCompleted, domain.ErrConflict, domain.ErrInvalidInput, ErrInternal} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// internalError помечает ошибку хранилища как внутреннюю, сохраняя причину в цепочке
// По причине после транзакции распознаются конфликты сериализации
func internalError(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, step, err)
}
