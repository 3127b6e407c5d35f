package get_session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/sessions"
	"github.com/m04kA/SMC-SalonBooking/internal/service/sessions/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type stubService struct {
	token string
	resp  *models.SessionResponse
	err   error
}

func (s *stubService) Get(_ context.Context, token string) (*models.SessionResponse, error) {
	s.token = token
	return s.resp, s.err
}

func serve(svc *stubService) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/sessions/{token}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/abc", nil))
	return rec
}

func TestHandleReturnsSession(t *testing.T) {
	svc := &stubService{resp: &models.SessionResponse{
		Token: "abc",
		State: "SLOT_SELECTED",
		Salon: models.SalonSnapshot{ID: 7, Name: "Studio", Timezone: "Europe/Istanbul"},
		SelectedSlot: &models.SelectedSlotResponse{
			Date:      "2030-01-08",
			StartTime: "10:00",
			ServiceID: 10,
			StaffIDs:  []int64{1},
		},
	}}

	rec := serve(svc)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", svc.token)

	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "SLOT_SELECTED", resp.State)
	assert.Equal(t, int64(7), resp.Salon.ID)
	require.NotNil(t, resp.SelectedSlot)
	assert.Equal(t, "10:00", resp.SelectedSlot.StartTime)
}

func TestHandleMapsErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "session missing", err: sessions.ErrSessionNotFound, wantStatus: http.StatusNotFound},
		{name: "session expired", err: domain.ErrSessionExpired, wantStatus: http.StatusGone},
		{name: "session completed", err: domain.ErrSessionCompleted, wantStatus: http.StatusGone},
		{name: "internal", err: sessions.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubService{err: tt.err})
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

func TestHandleCompletedAndExpiredDiffer(t *testing.T) {
	completed := serve(&stubService{err: domain.ErrSessionCompleted})
	expired := serve(&stubService{err: domain.ErrSessionExpired})

	assert.Equal(t, http.StatusGone, completed.Code)
	assert.Equal(t, http.StatusGone, expired.Code)
	assert.NotEqual(t, completed.Body.String(), expired.Body.String())
}
