package get_available_dates

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
	getAvailableDates "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_dates"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubUseCase struct {
	got  *getAvailableDates.Request
	resp *getAvailableDates.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableDates.Request) (*getAvailableDates.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc *stubUseCase, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/sessions/{token}/dates", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/abc/dates", strings.NewReader(body)))
	return rec
}

const validBody = `{"startDate":"2030-01-07","endDate":"2030-01-09","groups":[{"personId":"p1","serviceIds":[10,11]}]}`

func day(d int) time.Time {
	return time.Date(2030, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestHandleReturnsDates(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableDates.Response{
		AvailableDates:   []time.Time{day(7), day(9)},
		UnavailableDates: []time.Time{day(8)},
	}}

	rec := serve(uc, validBody)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, "abc", uc.got.Token)
	assert.Equal(t, day(7), uc.got.StartDate)
	assert.Equal(t, day(9), uc.got.EndDate)
	assert.Equal(t, []getAvailableDates.Group{{PersonID: "p1", ServiceIDs: []int64{10, 11}}}, uc.got.Groups)

	var resp DatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2030-01-07", "2030-01-09"}, resp.AvailableDates)
	assert.Equal(t, []string{"2030-01-08"}, resp.UnavailableDates)
}

func TestHandleMalformedDateReachesUseCase(t *testing.T) {
	uc := &stubUseCase{err: domain.ErrSessionExpired}

	rec := serve(uc, `{"startDate":"07/01/2030","endDate":"2030-01-09","groups":[{"serviceIds":[10]}]}`)
	assert.Equal(t, http.StatusGone, rec.Code)

	require.NotNil(t, uc.got)
	assert.True(t, uc.got.StartDate.IsZero())
	assert.Equal(t, day(9), uc.got.EndDate)
}

func TestHandleMapsErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "malformed body", body: `{"startDate":`, wantStatus: http.StatusBadRequest},
		{name: "session missing", body: validBody, err: getAvailableDates.ErrSessionNotFound, wantStatus: http.StatusNotFound},
		{name: "session confirmed", body: validBody, err: domain.ErrSessionCompleted, wantStatus: http.StatusGone},
		{name: "range too long", body: validBody, err: getAvailableDates.ErrRangeTooLong, wantStatus: http.StatusBadRequest},
		{name: "invalid request", body: validBody, err: getAvailableDates.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "service missing", body: validBody, err: getAvailableDates.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", body: validBody, err: getAvailableDates.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: tt.err}
			rec := serve(uc, tt.body)
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
