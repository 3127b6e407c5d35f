package get_chain_slots

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	sessionRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UseCase use case для поиска цепочек услуг на дату, в том числе для нескольких человек
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

// Execute выполняет use case поиска цепочек
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Проверяем доступ к сессии
	session, err := uc.sessionRepo.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Warn("GetChainSlots: session not found")
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("GetChainSlots: failed to get session: %v", err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}
	if err := session.CheckAccess(now); err != nil {
		uc.logger.Warn("GetChainSlots: session of salon=%d rejected: %v", session.SalonID, err)
		return nil, err
	}

	// 3. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetChainSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetChainSlots: salon=%d, date=%s, people=%d",
		session.SalonID, req.Date.Format(domain.DateFormat), len(req.Groups))

	// 4. Строим индекс на дату
	started := time.Now()
	groups := toPersonGroups(req.Groups)
	idx, err := uc.loader.Load(ctx, availability.Query{
		SalonID:    session.SalonID,
		From:       req.Date,
		To:         req.Date,
		ServiceIDs: serviceIDs(groups),
	})
	if err != nil {
		uc.logger.Error("GetChainSlots: failed to load availability data: %v", err)
		return nil, fmt.Errorf("%w: failed to load availability data: %v", ErrInternal, err)
	}

	if err := validateServices(idx, req.Groups); err != nil {
		uc.logger.Warn("GetChainSlots: %v", err)
		return nil, err
	}

	// 5. Ищем и синхронизируем цепочки
	found := availability.SearchChainSlots(idx, req.Date, groups, now)
	uc.metrics.ObserveAvailability("chains", time.Since(started))

	people, err := toPeople(found)
	if err != nil {
		uc.logger.Error("GetChainSlots: failed to format chains: %v", err)
		return nil, fmt.Errorf("%w: failed to format chains: %v", ErrInternal, err)
	}

	uc.logger.Info("GetChainSlots: salon=%d, date=%s, %d start options for the first person",
		session.SalonID, req.Date.Format(domain.DateFormat), firstCount(people))

	return &Response{Date: req.Date, People: people}, nil
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

func serviceIDs(groups []availability.PersonGroup) []int64 {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, g := range groups {
		for _, id := range g.ServiceIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func toPeople(found []availability.PersonSlots) ([]Person, error) {
	people := make([]Person, 0, len(found))
	for _, p := range found {
		person := Person{PersonID: p.PersonID, Slots: make([]ChainSlot, 0, len(p.Slots))}
		for _, s := range p.Slots {
			slot, err := toChainSlot(s)
			if err != nil {
				return nil, err
			}
			person.Slots = append(person.Slots, slot)
		}
		people = append(people, person)
	}
	return people, nil
}

func toChainSlot(s availability.ChainSlot) (ChainSlot, error) {
	start, err := types.NewTimeStringFromMinutes(s.Start)
	if err != nil {
		return ChainSlot{}, err
	}
	// Конец цепочки может приходиться на 24:00
	slot := ChainSlot{StartTime: start, EndTime: types.TimeString(types.FormatMinutes(s.End)), StaffID: s.StaffID}
	for _, svc := range s.Services {
		svcStart, err := types.NewTimeStringFromMinutes(svc.Start)
		if err != nil {
			return ChainSlot{}, err
		}
		slot.Services = append(slot.Services, ServiceWindow{
			ServiceID: svc.ServiceID,
			StaffID:   svc.StaffID,
			StartTime: svcStart,
			EndTime:   types.TimeString(types.FormatMinutes(svc.End)),
		})
	}
	return slot, nil
}

func firstCount(people []Person) int {
	if len(people) == 0 {
		return 0
	}
	return len(people[0].Slots)
}
