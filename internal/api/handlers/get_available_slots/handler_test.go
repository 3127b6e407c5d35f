package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc *stubUseCase, query string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/sessions/{token}/availability", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/abc/availability"+query, nil))
	return rec
}

func TestHandleReturnsSlots(t *testing.T) {
	visitDay := time.Date(2030, 1, 8, 0, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &getAvailableSlots.Response{
		Date:        visitDay,
		ServiceID:   10,
		PeopleCount: 2,
		Slots: []getAvailableSlots.Slot{{
			StartTime:      "10:00",
			AvailableStaff: 2,
			Staff: []getAvailableSlots.StaffOption{
				{StaffID: 1, DurationMinutes: 30},
				{StaffID: 2, DurationMinutes: 45},
			},
		}},
		LockToken: "tok",
	}}

	rec := serve(uc, "?date=2030-01-08&serviceId=10&peopleCount=2")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, "abc", uc.got.Token)
	assert.Equal(t, visitDay, uc.got.Date)
	assert.Equal(t, int64(10), uc.got.ServiceID)
	assert.Equal(t, 2, uc.got.PeopleCount)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2030-01-08", resp.Date)
	assert.Equal(t, "tok", resp.LockToken)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "10:00", resp.Slots[0].StartTime)
	assert.Equal(t, []StaffOption{{StaffID: 1, DurationMinutes: 30}, {StaffID: 2, DurationMinutes: 45}}, resp.Slots[0].Staff)
}

func TestHandlePassesRawParametersToUseCase(t *testing.T) {
	tests := []struct {
		name  string
		query string
		check func(t *testing.T, req *getAvailableSlots.Request)
	}{
		{
			name:  "missing date",
			query: "?serviceId=10",
			check: func(t *testing.T, req *getAvailableSlots.Request) {
				assert.True(t, req.Date.IsZero())
				assert.Equal(t, int64(10), req.ServiceID)
			},
		},
		{
			name:  "malformed date",
			query: "?date=08.01.2030&serviceId=10",
			check: func(t *testing.T, req *getAvailableSlots.Request) { assert.True(t, req.Date.IsZero()) },
		},
		{
			name:  "missing service",
			query: "?date=2030-01-08",
			check: func(t *testing.T, req *getAvailableSlots.Request) { assert.Zero(t, req.ServiceID) },
		},
		{
			name:  "non numeric service",
			query: "?date=2030-01-08&serviceId=abc",
			check: func(t *testing.T, req *getAvailableSlots.Request) { assert.Equal(t, int64(-1), req.ServiceID) },
		},
		{
			name:  "non numeric people count",
			query: "?date=2030-01-08&serviceId=10&peopleCount=two",
			check: func(t *testing.T, req *getAvailableSlots.Request) { assert.Equal(t, -1, req.PeopleCount) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: getAvailableSlots.ErrInvalidInput}

			rec := serve(uc, tt.query)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			require.NotNil(t, uc.got, "use case decides on the request shape")
			tt.check(t, uc.got)
		})
	}
}

func TestHandleMapsErrors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
	}{
		{name: "session missing", query: "?date=2030-01-08&serviceId=10", err: getAvailableSlots.ErrSessionNotFound, wantStatus: http.StatusNotFound},
		{name: "session expired", query: "?date=2030-01-08&serviceId=10", err: domain.ErrSessionExpired, wantStatus: http.StatusGone},
		{name: "confirmed session with bad service id", query: "?date=2030-01-08&serviceId=abc", err: domain.ErrSessionCompleted, wantStatus: http.StatusGone},
		{name: "confirmed session without date", query: "?serviceId=10", err: domain.ErrSessionCompleted, wantStatus: http.StatusGone},
		{name: "service missing", query: "?date=2030-01-08&serviceId=99", err: getAvailableSlots.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", query: "?date=2030-01-08&serviceId=10", err: getAvailableSlots.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, tt.query)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Code)
		})
	}
}
