package confirm_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	confirmBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/confirm_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubUseCase struct {
	resp *confirmBooking.Response
	err  error
}

func (s *stubUseCase) Execute(context.Context, *confirmBooking.Request) (*confirmBooking.Response, error) {
	return s.resp, s.err
}

func serve(uc *stubUseCase) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/sessions/{token}/confirm", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"name":"Ayşe","phone":"+905551112233"}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/abc/confirm", body))
	return rec
}

func TestHandleConfirms(t *testing.T) {
	at := time.Date(2030, 1, 8, 10, 0, 0, 0, time.UTC)
	rec := serve(&stubUseCase{resp: &confirmBooking.Response{
		Token:    "abc",
		State:    domain.SessionConfirmed,
		Customer: confirmBooking.Customer{ID: 7, Name: "Ayşe", Phone: "+905551112233", Returning: true},
		Appointments: []confirmBooking.Appointment{
			{ID: 1, StaffID: 2, ServiceID: 10, StartTime: at, EndTime: at.Add(30 * time.Minute), Price: decimal.NewFromInt(350)},
		},
	}})

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp ConfirmResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CONFIRMED", resp.State)
	assert.True(t, resp.Customer.Returning)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, "350.00", resp.Appointments[0].Price)
}

func TestHandleConfirmErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "lock expired", err: confirmBooking.ErrLockExpired, wantStatus: http.StatusGone},
		{name: "already confirmed", err: domain.ErrSessionCompleted, wantStatus: http.StatusGone},
		{name: "session missing", err: confirmBooking.ErrSessionNotFound, wantStatus: http.StatusNotFound},
		{name: "no slot", err: domain.ErrNoSlotSelected, wantStatus: http.StatusConflict},
		{name: "slot taken", err: confirmBooking.ErrSlotTaken, wantStatus: http.StatusConflict},
		{name: "invalid contacts", err: confirmBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: confirmBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err})
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
