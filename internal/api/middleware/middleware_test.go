package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
)

func TestMetricsUseRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "booking")

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m, "booking"))
	router.HandleFunc("/sessions/{token}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusGone)
	})

	for _, token := range []string{"a", "b"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/sessions/"+token, nil))
	}

	counter := m.HTTPRequestsTotal.WithLabelValues("booking", http.MethodGet, "/sessions/{token}", "410")
	assert.Equal(t, 2.0, testutil.ToFloat64(counter))
}

func TestRecoveryAnswers500(t *testing.T) {
	router := mux.NewRouter()
	router.Use(Recovery(logger.NewNop()))
	router.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":500`)
}
