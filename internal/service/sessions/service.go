package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	sessionRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-SalonBooking/internal/service/sessions/models"
)

// Service сервис сессий бронирования
type Service struct {
	salonRepo    SalonRepository
	sessionRepo  SessionRepository
	sessionTTL   time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	salonRepo SalonRepository,
	sessionRepo SessionRepository,
	sessionTTL time.Duration,
	logger Logger,
) *Service {
	if sessionTTL <= 0 {
		sessionTTL = domain.DefaultSessionTTL
	}
	return &Service{
		salonRepo:    salonRepo,
		sessionRepo:  sessionRepo,
		sessionTTL:   sessionTTL,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create открывает новую сессию бронирования для салона
func (s *Service) Create(ctx context.Context, req *models.CreateSessionRequest) (*models.CreateSessionResponse, error) {
	s.logger.Info("Create: opening session for salon=%d", req.SalonID)

	if req.SalonID <= 0 {
		return nil, fmt.Errorf("%w: salonId must be positive", ErrInvalidInput)
	}

	if _, err := s.salonRepo.GetSalon(ctx, req.SalonID); err != nil {
		if errors.Is(err, catalogRepo.ErrSalonNotFound) {
			s.logger.Warn("Create: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("Create: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Create - get salon: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	session := &domain.BookingSession{
		Token:     uuid.NewString(),
		SalonID:   req.SalonID,
		State:     domain.SessionCreated,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	created, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		s.logger.Error("Create: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: session opened for salon=%d, expires at %s", req.SalonID, created.ExpiresAt.Format(time.RFC3339))
	return &models.CreateSessionResponse{
		Token:     created.Token,
		SalonID:   created.SalonID,
		State:     string(created.State),
		ExpiresAt: created.ExpiresAt,
	}, nil
}

// Get возвращает сессию со снимком салона
// Просроченная или подтвержденная сессия недоступна
func (s *Service) Get(ctx context.Context, token string) (*models.SessionResponse, error) {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("Get: session not found")
			return nil, ErrSessionNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	if err := session.CheckAccess(s.timeProvider.Now()); err != nil {
		s.logger.Warn("Get: session of salon=%d rejected: %v", session.SalonID, err)
		return nil, err
	}

	var (
		salon      *domain.Salon
		services   []*domain.Service
		categories []*domain.Category
		staff      []*domain.Staff
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		salon, err = s.salonRepo.GetSalon(gctx, session.SalonID)
		return err
	})
	g.Go(func() error {
		var err error
		services, err = s.salonRepo.ListServices(gctx, session.SalonID)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.salonRepo.ListCategories(gctx, session.SalonID)
		return err
	})
	g.Go(func() error {
		var err error
		staff, err = s.salonRepo.ListStaff(gctx, session.SalonID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, catalogRepo.ErrSalonNotFound) {
			s.logger.Warn("Get: salon id=%d of session not found", session.SalonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("Get: failed to load salon id=%d: %v", session.SalonID, err)
		return nil, fmt.Errorf("%w: Get - load salon: %v", ErrInternal, err)
	}

	return &models.SessionResponse{
		Token:        session.Token,
		State:        string(session.State),
		ExpiresAt:    session.ExpiresAt,
		Salon:        models.FromDomainSalon(salon, services, categories, staff),
		SelectedSlot: models.FromDomainSlot(session.SelectedSlot),
	}, nil
}
