package lock_slot

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	lockRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/lock"
	sessionRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

// memStore общее in-memory хранилище сессий, блокировок и записей
type memStore struct {
	mu           sync.Mutex
	sessions     map[string]*domain.BookingSession
	locks        map[string]*domain.TemporaryLock
	appointments []*domain.Appointment
	deleteErr    error
	overlapErr   error
}

func newMemStore() *memStore {
	return &memStore{
		sessions: make(map[string]*domain.BookingSession),
		locks:    make(map[string]*domain.TemporaryLock),
	}
}

type fakeSessions struct{ *memStore }

func (f fakeSessions) GetByToken(_ context.Context, token string) (*domain.BookingSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok {
		return nil, sessionRepo.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (f fakeSessions) UpdateSelectedSlot(_ context.Context, token string, slot *domain.SelectedSlot, from []domain.SessionState, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok || !slices.Contains(from, s.State) {
		return sessionRepo.ErrStateChanged
	}
	copied := *slot
	s.State = domain.SessionSlotSelected
	s.SelectedSlot = &copied
	s.UpdatedAt = now
	return nil
}

type fakeLocks struct{ *memStore }

func (f fakeLocks) Create(_ context.Context, l *domain.TemporaryLock) (*domain.TemporaryLock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.locks[l.ID]; ok {
		return nil, lockRepo.ErrLockExists
	}
	copied := *l
	f.locks[l.ID] = &copied
	return l, nil
}

func (f fakeLocks) GetActive(_ context.Context, id string, salonID int64, now time.Time) (*domain.TemporaryLock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.locks[id]
	if !ok || l.SalonID != salonID || !l.IsActive(now) {
		return nil, lockRepo.ErrLockNotFound
	}
	return l, nil
}

func (f fakeLocks) ListActiveByDate(_ context.Context, salonID int64, date time.Time, now time.Time) ([]*domain.TemporaryLock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var locks []*domain.TemporaryLock
	for _, l := range f.locks {
		if l.SalonID == salonID && l.Date.Equal(date) && l.IsActive(now) {
			locks = append(locks, l)
		}
	}
	return locks, nil
}

func (f fakeLocks) ExtendExpiry(_ context.Context, id string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.locks[id]
	if !ok {
		return lockRepo.ErrLockNotFound
	}
	l.ExpiresAt = expiresAt
	return nil
}

func (f fakeLocks) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.locks[id]; !ok {
		return lockRepo.ErrLockNotFound
	}
	delete(f.locks, id)
	return nil
}

type fakeAppointments struct{ *memStore }

func (f fakeAppointments) HasStaffOverlap(_ context.Context, staffIDs []int64, start, end time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.overlapErr != nil {
		return false, f.overlapErr
	}
	for _, a := range f.appointments {
		if slices.Contains(staffIDs, a.StaffID) && a.OccupiesTime() && a.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

// serialTx выполняет транзакции строго по одной
type serialTx struct{ mu sync.Mutex }

func (tx *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return fn(ctx)
}

type fakeLoader struct{ in availability.IndexInput }

func (f *fakeLoader) Load(context.Context, availability.Query) (*availability.Index, error) {
	return availability.NewIndex(f.in), nil
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type lockCounter struct {
	mu      sync.Mutex
	results []string
}

func (c *lockCounter) RecordLock(result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, result)
}

var errStorageDown = errors.New("storage down")

func catalogIndex() availability.IndexInput {
	override := 45
	return availability.IndexInput{
		Salon: &domain.Salon{ID: 1, Name: "Studio", Timezone: "UTC", Settings: domain.DefaultSalonSettings()},
		Services: []*domain.Service{
			{ID: 10, SalonID: 1, Name: "Cut", DurationMinutes: 30, Price: decimal.NewFromInt(300), IsActive: true},
			{ID: 11, SalonID: 1, Name: "Old perm", DurationMinutes: 90, Price: decimal.NewFromInt(900), IsActive: false},
		},
		StaffServices: []*domain.StaffService{
			{StaffID: 1, ServiceID: 10, IsActive: true},
			{StaffID: 2, ServiceID: 10, DurationOverride: &override, IsActive: true},
		},
	}
}
