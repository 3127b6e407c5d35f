package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	sessionRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

// UseCase use case для проверки, в какие даты периода возможен визит
type UseCase struct {
	sessionRepo  SessionRepository
	loader       IndexLoader
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	loader IndexLoader,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		loader:       loader,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case проверки дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Проверяем доступ к сессии
	session, err := uc.sessionRepo.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Warn("GetAvailableDates: session not found")
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get session: %v", err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}
	if err := session.CheckAccess(now); err != nil {
		uc.logger.Warn("GetAvailableDates: session of salon=%d rejected: %v", session.SalonID, err)
		return nil, err
	}

	// 3. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableDates: salon=%d, period=%s to %s, groups=%d",
		session.SalonID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), len(req.Groups))

	// 4. Строим индекс за весь период
	started := time.Now()
	serviceIDs := uniqueServiceIDs(req.Groups)
	idx, err := uc.loader.Load(ctx, availability.Query{
		SalonID:    session.SalonID,
		From:       req.StartDate,
		To:         req.EndDate,
		ServiceIDs: serviceIDs,
	})
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to load availability data: %v", err)
		return nil, fmt.Errorf("%w: failed to load availability data: %v", ErrInternal, err)
	}

	// 5. Все запрошенные услуги должны существовать
	if err := validateServices(idx, serviceIDs); err != nil {
		uc.logger.Warn("GetAvailableDates: %v", err)
		return nil, err
	}

	// 6. Проверяем каждую дату
	result := availability.ScanDates(idx, req.StartDate, req.EndDate, toPersonGroups(req.Groups), now)
	uc.metrics.ObserveAvailability("dates", time.Since(started))

	uc.logger.Info("GetAvailableDates: salon=%d, %d available, %d unavailable",
		session.SalonID, len(result.Available), len(result.Unavailable))

	return &Response{
		AvailableDates:   result.Available,
		UnavailableDates: result.Unavailable,
	}, nil
}

func toPersonGroups(groups []Group) []availability.PersonGroup {
	result := make([]availability.PersonGroup, 0, len(groups))
	for i, g := range groups {
		personID := g.PersonID
		if personID == "" {
			personID = strconv.Itoa(i + 1)
		}
		result = append(result, availability.PersonGroup{PersonID: personID, ServiceIDs: g.ServiceIDs})
	}
	return result
}
