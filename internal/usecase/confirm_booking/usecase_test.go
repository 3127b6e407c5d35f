package confirm_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	lockRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/lock"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	start    = time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC)
	visitDay = time.Date(2030, 1, 8, 0, 0, 0, 0, time.UTC)
)

const lockToken = "0b7c1d9e-5a43-4f0e-9d8c-3f2a1b6c7d8e"

type harness struct {
	uc      *UseCase
	store   *memStore
	clock   *fakeClock
	results *confirmCounter
}

func newHarness() *harness {
	store := newMemStore()
	clock := &fakeClock{now: start}
	results := &confirmCounter{}

	uc := NewUseCase(
		fakeSessions{store},
		fakeLocks{store},
		fakeCustomers{store},
		fakeAppointments{store},
		&fakeLoader{in: catalogIndex()},
		&serialTx{store: store},
		results,
		logger.NewNop(),
	)
	uc.timeProvider = clock

	store.sessions["s"] = domain.BookingSession{
		Token:     "s",
		SalonID:   1,
		State:     domain.SessionSlotSelected,
		ExpiresAt: start.Add(domain.DefaultSessionTTL),
		SelectedSlot: &domain.SelectedSlot{
			Date:            visitDay,
			StartTime:       types.TimeString("10:00"),
			ServiceID:       10,
			StaffIDs:        []int64{1, 2},
			PeopleCount:     2,
			DurationMinutes: 30,
			LockToken:       lockToken,
		},
	}
	store.locks[lockToken] = domain.TemporaryLock{
		ID:              lockToken,
		SalonID:         1,
		Date:            visitDay,
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 30,
		ExpiresAt:       start.Add(domain.DefaultLockTTL),
	}

	return &harness{uc: uc, store: store, clock: clock, results: results}
}

func request() *Request {
	return &Request{Token: "s", Name: " Ayşe Yılmaz ", Phone: "+905551112233"}
}

func TestConfirmBooksEveryStaff(t *testing.T) {
	h := newHarness()
	req := request()
	req.Email = ptr.Ptr(" ayse@example.com ")

	resp, err := h.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.SessionConfirmed, resp.State)
	assert.False(t, resp.Customer.Returning)
	assert.Equal(t, "Ayşe Yılmaz", resp.Customer.Name)
	assert.Equal(t, "ayse@example.com", ptr.Value(resp.Customer.Email))

	require.Len(t, resp.Appointments, 2)
	at10 := time.Date(2030, 1, 8, 10, 0, 0, 0, time.UTC)
	for _, a := range resp.Appointments {
		assert.Equal(t, at10, a.StartTime)
		assert.Equal(t, at10.Add(30*time.Minute), a.EndTime)
	}
	assert.Equal(t, "300", resp.Appointments[0].Price.String())
	assert.Equal(t, "420", resp.Appointments[1].Price.String(), "staff price override is snapshotted")

	for _, a := range h.store.appointments {
		assert.Equal(t, domain.AppointmentBooked, a.Status)
		assert.Equal(t, resp.Customer.ID, ptr.Value(a.CustomerID))
	}

	session := h.store.sessions["s"]
	assert.Equal(t, domain.SessionConfirmed, session.State)
	require.NotNil(t, session.CustomerInfo)
	assert.Equal(t, "+905551112233", session.CustomerInfo.Phone)
	assert.NotContains(t, h.store.locks, lockToken)
	assert.Equal(t, []string{resultConfirmed}, h.results.results)
}

func TestConfirmReturningCustomer(t *testing.T) {
	h := newHarness()
	h.store.nextID = 100
	h.store.customers = []domain.Customer{{
		ID:      7,
		SalonID: 1,
		Name:    "Ayse",
		Phone:   "+905551112233",
		Email:   ptr.Ptr("old@example.com"),
	}}

	resp, err := h.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.True(t, resp.Customer.Returning)
	assert.Equal(t, int64(7), resp.Customer.ID)
	require.Len(t, h.store.customers, 1)
	assert.Equal(t, "Ayşe Yılmaz", h.store.customers[0].Name)
	assert.Equal(t, "old@example.com", ptr.Value(h.store.customers[0].Email), "email is kept when none is given")
}

func TestConfirmTwice(t *testing.T) {
	h := newHarness()

	_, err := h.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	_, err = h.uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, domain.ErrCompleted)
	assert.Len(t, h.store.appointments, 2)
}

func TestConcurrentConfirmBooksOnce(t *testing.T) {
	h := newHarness()

	const callers = 5
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = h.uc.Execute(context.Background(), request())
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrCompleted)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, h.store.appointments, 2)
	assert.Len(t, h.store.customers, 1)
}

func TestConfirmAfterLockExpired(t *testing.T) {
	h := newHarness()
	h.clock.now = start.Add(domain.DefaultLockTTL)

	_, err := h.uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrLockExpired)
	assert.ErrorIs(t, err, domain.ErrExpired)

	assert.Equal(t, domain.SessionSlotSelected, h.store.sessions["s"].State)
	assert.Empty(t, h.store.customers)
	assert.Equal(t, []string{resultLockLost}, h.results.results)
}

func TestConfirmRollsBackOnFailure(t *testing.T) {
	t.Run("staff booked meanwhile", func(t *testing.T) {
		h := newHarness()
		h.store.appointments = []domain.Appointment{{
			ID:        1,
			StaffID:   2,
			StartTime: time.Date(2030, 1, 8, 10, 15, 0, 0, time.UTC),
			EndTime:   time.Date(2030, 1, 8, 10, 45, 0, 0, time.UTC),
			Status:    domain.AppointmentBooked,
		}}

		_, err := h.uc.Execute(context.Background(), request())
		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.ErrorIs(t, err, domain.ErrConflict)

		assert.Empty(t, h.store.customers)
		assert.Contains(t, h.store.locks, lockToken)
		assert.Equal(t, []string{resultConflict}, h.results.results)
	})

	t.Run("appointment insert fails", func(t *testing.T) {
		h := newHarness()
		h.store.createErr = errStorageDown

		_, err := h.uc.Execute(context.Background(), request())
		assert.ErrorIs(t, err, ErrInternal)

		assert.Empty(t, h.store.customers)
		assert.Empty(t, h.store.appointments)
		assert.Contains(t, h.store.locks, lockToken)
		assert.Equal(t, domain.SessionSlotSelected, h.store.sessions["s"].State)
		assert.Equal(t, []string{resultError}, h.results.results)
	})
}

func TestConfirmSerializationFailureIsConflict(t *testing.T) {
	h := newHarness()
	h.store.getLockErr = fmt.Errorf("%w: GetActive - %w", lockRepo.ErrScanRow, &pq.Error{Code: "40001"})

	_, err := h.uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NotErrorIs(t, err, ErrInternal)

	assert.Empty(t, h.store.appointments)
	assert.Contains(t, h.store.locks, lockToken)
	assert.Equal(t, domain.SessionSlotSelected, h.store.sessions["s"].State)
	assert.Equal(t, []string{resultConflict}, h.results.results)
}

func TestConfirmRejects(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(h *harness, r *Request)
		wantErr error
	}{
		{
			name:    "missing session",
			prepare: func(_ *harness, r *Request) { r.Token = "nope" },
			wantErr: domain.ErrNotFound,
		},
		{
			name: "expired session",
			prepare: func(h *harness, _ *Request) {
				s := h.store.sessions["s"]
				s.ExpiresAt = start
				h.store.sessions["s"] = s
			},
			wantErr: domain.ErrExpired,
		},
		{
			name:    "empty name",
			prepare: func(_ *harness, r *Request) { r.Name = "  " },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "empty phone",
			prepare: func(_ *harness, r *Request) { r.Phone = "" },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "malformed email",
			prepare: func(_ *harness, r *Request) { r.Email = ptr.Ptr("not an email") },
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "no slot selected",
			prepare: func(h *harness, _ *Request) {
				s := h.store.sessions["s"]
				s.State = domain.SessionCreated
				s.SelectedSlot = nil
				h.store.sessions["s"] = s
			},
			wantErr: domain.ErrNoSlotSelected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			req := request()
			tt.prepare(h, req)

			_, err := h.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, h.store.appointments)
		})
	}
}
