package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	sessionRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	sessionRepo  SessionRepository
	lockRepo     LockRepository
	loader       IndexLoader
	metrics      Metrics
	lockTTL      time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	lockRepo LockRepository,
	loader IndexLoader,
	metrics Metrics,
	lockTTL time.Duration,
	logger Logger,
) *UseCase {
	if lockTTL <= 0 {
		lockTTL = domain.DefaultLockTTL
	}
	return &UseCase{
		sessionRepo:  sessionRepo,
		lockRepo:     lockRepo,
		loader:       loader,
		metrics:      metrics,
		lockTTL:      lockTTL,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Проверяем доступ к сессии
	session, err := uc.sessionRepo.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Warn("GetAvailableSlots: session not found")
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get session: %v", err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}
	if err := session.CheckAccess(now); err != nil {
		uc.logger.Warn("GetAvailableSlots: session of salon=%d rejected: %v", session.SalonID, err)
		return nil, err
	}

	// 3. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: salon=%d, service=%d, date=%s, people=%d",
		session.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat), req.PeopleCount)

	// 4. Строим индекс на дату
	started := time.Now()
	idx, err := uc.loader.Load(ctx, availability.Query{
		SalonID:    session.SalonID,
		From:       req.Date,
		To:         req.Date,
		ServiceIDs: []int64{req.ServiceID},
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load availability data: %v", err)
		return nil, fmt.Errorf("%w: failed to load availability data: %v", ErrInternal, err)
	}

	// 5. Проверяем услугу
	service, ok := idx.Service(req.ServiceID)
	if !ok || !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d not found in salon=%d", req.ServiceID, session.SalonID)
		return nil, ErrServiceNotFound
	}

	// 6. Получаем действующие блокировки на дату
	locks, err := uc.lockRepo.ListActiveByDate(ctx, session.SalonID, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get locks: %v", err)
		return nil, fmt.Errorf("%w: failed to get locks: %v", ErrInternal, err)
	}

	// 7. Собственная блокировка сессии не скрывает её слот
	var ownLockID string
	if session.SelectedSlot != nil {
		ownLockID = session.SelectedSlot.LockToken
	}

	// 8. Генерируем сетку слотов
	grid := availability.GenerateGrid(idx, availability.GridInput{
		Date:        req.Date,
		ServiceID:   req.ServiceID,
		PeopleCount: req.PeopleCount,
		Locks:       locks,
		OwnLockID:   ownLockID,
		Now:         now,
	})
	uc.metrics.ObserveAvailability("slots", time.Since(started))

	slots, err := toSlots(grid)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to format slots: %v", err)
		return nil, fmt.Errorf("%w: failed to format slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for salon=%d, service=%d, date=%s",
		len(slots), session.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:               req.Date,
		ServiceID:          req.ServiceID,
		PeopleCount:        req.PeopleCount,
		Slots:              slots,
		LockToken:          uuid.NewString(),
		LockTokenExpiresAt: now.Add(uc.lockTTL),
	}, nil
}

func toSlots(grid []availability.GridSlot) ([]Slot, error) {
	slots := make([]Slot, 0, len(grid))
	for _, g := range grid {
		start, err := types.NewTimeStringFromMinutes(g.Start)
		if err != nil {
			return nil, err
		}

		staff := make([]StaffOption, 0, len(g.Staff))
		for _, st := range g.Staff {
			staff = append(staff, StaffOption{StaffID: st.StaffID, DurationMinutes: st.DurationMinutes})
		}

		slots = append(slots, Slot{
			StartTime:      start,
			AvailableStaff: len(staff),
			Staff:          staff,
		})
	}
	return slots, nil
}
