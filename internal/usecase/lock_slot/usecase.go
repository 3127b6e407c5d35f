package lock_slot

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	lockRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/lock"
	sessionRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// Результаты попытки блокировки для метрик
const (
	resultCreated   = "created"
	resultRefreshed = "refreshed"
	resultConflict  = "conflict"
	resultError     = "error"
)

// UseCase use case для блокировки слота за сессией
type UseCase struct {
	sessionRepo     SessionRepository
	lockRepo        LockRepository
	appointmentRepo AppointmentRepository
	loader          IndexLoader
	txManager       TransactionManager
	metrics         Metrics
	lockTTL         time.Duration
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	lockRepo LockRepository,
	appointmentRepo AppointmentRepository,
	loader IndexLoader,
	txManager TransactionManager,
	metrics Metrics,
	lockTTL time.Duration,
	logger Logger,
) *UseCase {
	if lockTTL <= 0 {
		lockTTL = domain.DefaultLockTTL
	}
	return &UseCase{
		sessionRepo:     sessionRepo,
		lockRepo:        lockRepo,
		appointmentRepo: appointmentRepo,
		loader:          loader,
		txManager:       txManager,
		metrics:         metrics,
		lockTTL:         lockTTL,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case блокировки слота
// Проверка конфликтов и запись блокировки выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	switch {
	case err == nil && resp.Refreshed:
		uc.metrics.RecordLock(resultRefreshed)
	case err == nil:
		uc.metrics.RecordLock(resultCreated)
	case errors.Is(err, domain.ErrConflict):
		uc.metrics.RecordLock(resultConflict)
	case errors.Is(err, ErrInternal):
		uc.metrics.RecordLock(resultError)
	}
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Проверяем доступ к сессии и её состояние
	session, err := uc.sessionRepo.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Warn("LockSlot: session not found")
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("LockSlot: failed to get session: %v", err)
		return nil, internalError("failed to get session", err)
	}
	if err := session.CheckAccess(now); err != nil {
		uc.logger.Warn("LockSlot: session of salon=%d rejected: %v", session.SalonID, err)
		return nil, err
	}
	if err := session.CanSelectSlot(); err != nil {
		uc.logger.Warn("LockSlot: session of salon=%d in state %s", session.SalonID, session.State)
		return nil, err
	}

	// 3. Валидация формы слота
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("LockSlot: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("LockSlot: salon=%d, service=%d, date=%s, time=%s, staff=%v",
		session.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.StaffIDs)

	// 4. Проверяем услугу и мастеров
	idx, err := uc.loader.Load(ctx, availability.Query{
		SalonID:    session.SalonID,
		From:       req.Date,
		To:         req.Date,
		ServiceIDs: []int64{req.ServiceID},
	})
	if err != nil {
		uc.logger.Error("LockSlot: failed to load catalog: %v", err)
		return nil, internalError("failed to load catalog", err)
	}

	service, ok := idx.Service(req.ServiceID)
	if !ok || !service.IsActive {
		uc.logger.Warn("LockSlot: service id=%d not found in salon=%d", req.ServiceID, session.SalonID)
		return nil, ErrServiceNotFound
	}

	duration, err := slotDuration(idx, service, req.StaffIDs)
	if err != nil {
		uc.logger.Warn("LockSlot: %v", err)
		return nil, err
	}

	staffIDs := slices.Clone(req.StaffIDs)
	slices.Sort(staffIDs)

	candidate := domain.SelectedSlot{
		Date:            req.Date,
		StartTime:       req.StartTime,
		ServiceID:       req.ServiceID,
		StaffIDs:        staffIDs,
		PeopleCount:     req.PeopleCount,
		DurationMinutes: duration,
	}

	// 5. Слот заново проверяется по индексу теми же правилами, что и сетка слотов
	err = availability.CheckSlot(idx, availability.SlotCheck{
		Date:      candidate.Date,
		ServiceID: service.ID,
		Start:     candidate.StartTime.Minutes(),
		StaffIDs:  staffIDs,
		Now:       now,
	})
	if err != nil {
		uc.logger.Warn("LockSlot: slot %s %s rejected: %v",
			candidate.Date.Format(domain.DateFormat), candidate.StartTime, err)
		return nil, fmt.Errorf("%w: %v", ErrSlotUnavailable, err)
	}

	// 6. Прежняя блокировка другого слота освобождается до транзакции
	ownLockID := ""
	held := session.SelectedSlot
	if held != nil {
		ownLockID = held.LockToken
		if !held.Same(&candidate) {
			uc.releaseHeld(ctx, held.LockToken)
			held = nil
		}
	}

	start := candidate.StartTime.On(candidate.Date, idx.Location())
	end := start.Add(time.Duration(duration) * time.Minute)
	startMinutes := candidate.StartTime.Minutes()
	expiresAt := now.Add(uc.lockTTL)
	refreshed := false

	// 7. Проверки и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Тот же слот при действующей блокировке: продлеваем её
		if held != nil {
			ok, err := uc.refresh(txCtx, session, held, expiresAt, now)
			if err != nil {
				return err
			}
			if ok {
				candidate.LockToken = held.LockToken
				refreshed = true
				return nil
			}
		}

		// 7.2. Чужие действующие блокировки, пересекающие слот
		locks, err := uc.lockRepo.ListActiveByDate(txCtx, session.SalonID, candidate.Date, now)
		if err != nil {
			uc.logger.Error("LockSlot: failed to check locks: %v", err)
			return internalError("failed to check locks", err)
		}
		if existing := availability.ConflictingLock(locks, ownLockID, candidate.Date, startMinutes, startMinutes+duration, now); existing != nil {
			uc.logger.Warn("LockSlot: slot %s %s overlaps a lock at %s until %s",
				candidate.Date.Format(domain.DateFormat), candidate.StartTime, existing.StartTime, existing.ExpiresAt.Format(time.RFC3339))
			return ErrSlotLocked
		}

		// 7.3. Записи выбранных мастеров на это время
		busy, err := uc.appointmentRepo.HasStaffOverlap(txCtx, staffIDs, start, end)
		if err != nil {
			uc.logger.Error("LockSlot: failed to check appointments: %v", err)
			return internalError("failed to check appointments", err)
		}
		if busy {
			uc.logger.Warn("LockSlot: staff %v already booked at %s", staffIDs, start.Format(time.RFC3339))
			return ErrSlotTaken
		}

		// 7.4. Создаем блокировку
		lockID := req.LockToken
		if lockID == "" {
			lockID = uuid.NewString()
		}
		_, err = uc.lockRepo.Create(txCtx, &domain.TemporaryLock{
			ID:              lockID,
			SalonID:         session.SalonID,
			Date:            candidate.Date,
			StartTime:       candidate.StartTime,
			DurationMinutes: duration,
			ExpiresAt:       expiresAt,
		})
		if err != nil {
			if errors.Is(err, lockRepo.ErrLockExists) {
				uc.logger.Warn("LockSlot: lock token already used")
				return ErrLockTokenUsed
			}
			uc.logger.Error("LockSlot: failed to create lock: %v", err)
			return internalError("failed to create lock", err)
		}
		candidate.LockToken = lockID

		// 7.5. Переводим сессию в SLOT_SELECTED
		return uc.selectSlot(txCtx, session, &candidate, now)
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) || txmanager.IsUniqueViolation(err) {
			uc.logger.Warn("LockSlot: concurrent transaction: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		}
		if !errors.Is(err, domain.ErrConflict) && !errors.Is(err, ErrInternal) {
			uc.logger.Error("LockSlot: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("LockSlot: salon=%d, slot %s %s locked for %d min (refreshed=%t)",
		session.SalonID, candidate.Date.Format(domain.DateFormat), candidate.StartTime, duration, refreshed)

	return &Response{
		Date:            candidate.Date,
		StartTime:       candidate.StartTime,
		ServiceID:       candidate.ServiceID,
		StaffIDs:        candidate.StaffIDs,
		PeopleCount:     candidate.PeopleCount,
		DurationMinutes: candidate.DurationMinutes,
		LockToken:       candidate.LockToken,
		ExpiresAt:       expiresAt,
		Refreshed:       refreshed,
	}, nil
}

// refresh продлевает блокировку, которую сессия уже держит на этот слот
// Возвращает false, если блокировка истекла и слот нужно блокировать заново
func (uc *UseCase) refresh(ctx context.Context, session *domain.BookingSession, held *domain.SelectedSlot, expiresAt, now time.Time) (bool, error) {
	if _, err := uc.lockRepo.GetActive(ctx, held.LockToken, session.SalonID, now); err != nil {
		if errors.Is(err, lockRepo.ErrLockNotFound) {
			return false, nil
		}
		uc.logger.Error("LockSlot: failed to get held lock: %v", err)
		return false, internalError("failed to get held lock", err)
	}

	if err := uc.lockRepo.ExtendExpiry(ctx, held.LockToken, expiresAt); err != nil {
		uc.logger.Error("LockSlot: failed to extend lock: %v", err)
		return false, internalError("failed to extend lock", err)
	}

	return true, uc.selectSlot(ctx, session, held, now)
}

// selectSlot сохраняет слот в сессии условным обновлением
func (uc *UseCase) selectSlot(ctx context.Context, session *domain.BookingSession, slot *domain.SelectedSlot, now time.Time) error {
	from := []domain.SessionState{domain.SessionCreated, domain.SessionSlotSelected}
	if err := uc.sessionRepo.UpdateSelectedSlot(ctx, session.Token, slot, from, now); err != nil {
		if errors.Is(err, sessionRepo.ErrStateChanged) {
			uc.logger.Warn("LockSlot: session of salon=%d changed concurrently", session.SalonID)
			return ErrConcurrentUpdate
		}
		uc.logger.Error("LockSlot: failed to update session: %v", err)
		return internalError("failed to update session", err)
	}
	return nil
}

// releaseHeld освобождает прежнюю блокировку сессии; ошибка только логируется
func (uc *UseCase) releaseHeld(ctx context.Context, lockID string) {
	if lockID == "" {
		return
	}
	if err := uc.lockRepo.Delete(ctx, lockID); err != nil && !errors.Is(err, lockRepo.ErrLockNotFound) {
		uc.logger.Warn("LockSlot: failed to release previous lock: %v", err)
	}
}

// internalError помечает ошибку хранилища как внутреннюю, сохраняя причину в цепочке
// По причине после транзакции распознаются конфликты сериализации
func internalError(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, step, err)
}
