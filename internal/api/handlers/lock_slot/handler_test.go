package lock_slot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	lockSlot "github.com/m04kA/SMC-SalonBooking/internal/usecase/lock_slot"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubUseCase struct {
	got  *lockSlot.Request
	resp *lockSlot.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *lockSlot.Request) (*lockSlot.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(t *testing.T, uc *stubUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := mux.NewRouter()
	router.HandleFunc("/sessions/{token}/lock", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/abc/lock", strings.NewReader(body)))
	return rec
}

const validBody = `{"slot":{"date":"2030-01-08","startTime":"10:00","serviceId":10,"staffIds":[2,1],"peopleCount":2}}`

func TestHandleLocksSlot(t *testing.T) {
	expires := time.Date(2030, 1, 7, 10, 15, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &lockSlot.Response{
		Date:            time.Date(2030, 1, 8, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		ServiceID:       10,
		StaffIDs:        []int64{1, 2},
		PeopleCount:     2,
		DurationMinutes: 45,
		LockToken:       "tok",
		ExpiresAt:       expires,
	}}

	rec := serve(t, uc, validBody)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, "abc", uc.got.Token)
	assert.Equal(t, []int64{2, 1}, uc.got.StaffIDs)

	var resp LockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2030-01-08", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, "tok", resp.LockToken)
	assert.True(t, expires.Equal(resp.ExpiresAt))
}

func TestHandlePassesMalformedSlotToUseCase(t *testing.T) {
	uc := &stubUseCase{err: domain.ErrSessionCompleted}

	rec := serve(t, uc, `{"slot":{"date":"08.01.2030","startTime":"7pm"}}`)
	assert.Equal(t, http.StatusGone, rec.Code, "session state is reported before slot shape")

	require.NotNil(t, uc.got)
	assert.True(t, uc.got.Date.IsZero())
	assert.Equal(t, "7pm", uc.got.StartTime.String())
}

func TestHandleMapsErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "malformed body", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "invalid slot", body: validBody, err: lockSlot.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "session missing", body: validBody, err: lockSlot.ErrSessionNotFound, wantStatus: http.StatusNotFound},
		{name: "session expired", body: validBody, err: domain.ErrSessionExpired, wantStatus: http.StatusGone},
		{name: "session confirmed", body: validBody, err: domain.ErrSessionCompleted, wantStatus: http.StatusGone},
		{name: "slot locked", body: validBody, err: lockSlot.ErrSlotLocked, wantStatus: http.StatusConflict},
		{name: "slot unavailable", body: validBody, err: lockSlot.ErrSlotUnavailable, wantStatus: http.StatusConflict},
		{name: "wrong state", body: validBody, err: domain.ErrInvalidTransition, wantStatus: http.StatusConflict},
		{name: "staff not capable", body: validBody, err: lockSlot.ErrStaffNotCapable, wantStatus: http.StatusBadRequest},
		{name: "service missing", body: validBody, err: lockSlot.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", body: validBody, err: lockSlot.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubUseCase{err: tt.err}, tt.body)
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
