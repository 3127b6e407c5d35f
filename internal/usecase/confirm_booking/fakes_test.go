package confirm_booking

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	customerRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/customer"
	lockRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/lock"
	sessionRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
)

// memStore in-memory хранилище; serialTx откатывает его при ошибке
type memStore struct {
	mu           sync.Mutex
	sessions     map[string]domain.BookingSession
	locks        map[string]domain.TemporaryLock
	customers    []domain.Customer
	appointments []domain.Appointment
	nextID       int64
	createErr    error
	getLockErr   error
}

func newMemStore() *memStore {
	return &memStore{
		sessions: make(map[string]domain.BookingSession),
		locks:    make(map[string]domain.TemporaryLock),
	}
}

type snapshot struct {
	sessions     map[string]domain.BookingSession
	locks        map[string]domain.TemporaryLock
	customers    []domain.Customer
	appointments []domain.Appointment
	nextID       int64
}

func (s *memStore) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		sessions:     maps.Clone(s.sessions),
		locks:        maps.Clone(s.locks),
		customers:    slices.Clone(s.customers),
		appointments: slices.Clone(s.appointments),
		nextID:       s.nextID,
	}
}

func (s *memStore) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = snap.sessions
	s.locks = snap.locks
	s.customers = snap.customers
	s.appointments = snap.appointments
	s.nextID = snap.nextID
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

type fakeSessions struct{ *memStore }

func (f fakeSessions) GetByToken(_ context.Context, token string) (*domain.BookingSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok {
		return nil, sessionRepo.ErrSessionNotFound
	}
	return &s, nil
}

func (f fakeSessions) MarkConfirmed(_ context.Context, token string, info *domain.CustomerInfo, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok || s.State != domain.SessionSlotSelected {
		return sessionRepo.ErrStateChanged
	}
	copied := *info
	s.State = domain.SessionConfirmed
	s.CustomerInfo = &copied
	s.UpdatedAt = now
	f.sessions[token] = s
	return nil
}

type fakeLocks struct{ *memStore }

func (f fakeLocks) GetActive(_ context.Context, id string, salonID int64, now time.Time) (*domain.TemporaryLock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getLockErr != nil {
		return nil, f.getLockErr
	}
	l, ok := f.locks[id]
	if !ok || l.SalonID != salonID || !l.IsActive(now) {
		return nil, lockRepo.ErrLockNotFound
	}
	return &l, nil
}

func (f fakeLocks) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.locks[id]; !ok {
		return lockRepo.ErrLockNotFound
	}
	delete(f.locks, id)
	return nil
}

type fakeCustomers struct{ *memStore }

func (f fakeCustomers) GetBySalonAndPhone(_ context.Context, salonID int64, phone string) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.customers {
		if c.SalonID == salonID && c.Phone == phone {
			return &c, nil
		}
	}
	return nil, customerRepo.ErrCustomerNotFound
}

func (f fakeCustomers) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = f.id()
	f.customers = append(f.customers, *c)
	return c, nil
}

func (f fakeCustomers) UpdateContact(_ context.Context, id int64, name string, email *string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.customers {
		if f.customers[i].ID == id {
			f.customers[i].Name = name
			f.customers[i].Email = email
			f.customers[i].UpdatedAt = now
			return nil
		}
	}
	return customerRepo.ErrCustomerNotFound
}

type fakeAppointments struct{ *memStore }

func (f fakeAppointments) HasStaffOverlap(_ context.Context, staffIDs []int64, start, end time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appointments {
		if slices.Contains(staffIDs, a.StaffID) && a.OccupiesTime() && a.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeAppointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	a.ID = f.id()
	f.appointments = append(f.appointments, *a)
	return a, nil
}

// serialTx выполняет транзакции строго по одной и откатывает хранилище при ошибке
type serialTx struct {
	mu    sync.Mutex
	store *memStore
}

func (tx *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	snap := tx.store.snapshot()
	if err := fn(ctx); err != nil {
		tx.store.restore(snap)
		return err
	}
	return nil
}

type fakeLoader struct{ in availability.IndexInput }

func (f *fakeLoader) Load(context.Context, availability.Query) (*availability.Index, error) {
	return availability.NewIndex(f.in), nil
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type confirmCounter struct {
	mu      sync.Mutex
	results []string
}

func (c *confirmCounter) RecordConfirmation(result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = append(c.results, result)
}

var errStorageDown = errors.New("storage down")

func catalogIndex() availability.IndexInput {
	price := decimal.RequireFromString("420.00")
	return availability.IndexInput{
		Salon: &domain.Salon{ID: 1, Name: "Studio", Timezone: "UTC", Settings: domain.DefaultSalonSettings()},
		Services: []*domain.Service{
			{ID: 10, SalonID: 1, Name: "Cut", DurationMinutes: 30, Price: decimal.NewFromInt(300), IsActive: true},
		},
		StaffServices: []*domain.StaffService{
			{StaffID: 1, ServiceID: 10, IsActive: true},
			{StaffID: 2, ServiceID: 10, PriceOverride: &price, IsActive: true},
		},
	}
}
