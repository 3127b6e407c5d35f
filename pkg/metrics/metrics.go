// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов Prometheus для HTTP, БД и доменных операций
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec

	LocksTotal           *prometheus.CounterVec
	ConfirmationsTotal   *prometheus.CounterVec
	AvailabilityDuration *prometheus.HistogramVec
	ExpiredLocksSwept    *prometheus.CounterVec
}

// New создает коллекторы и регистрирует их в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает коллекторы и регистрирует их в переданном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation", "status"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		LocksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_slot_locks_total",
			Help: "Slot lock attempts by result",
		}, []string{"service", "result"}),
		ConfirmationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_confirmations_total",
			Help: "Booking confirmations by result",
		}, []string{"service", "result"}),
		AvailabilityDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "booking_availability_duration_seconds",
			Help:    "Time spent computing availability",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "kind"}),
		ExpiredLocksSwept: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_expired_locks_swept_total",
			Help: "Expired temporary locks removed by the sweeper",
		}, []string{"service"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.LocksTotal,
		m.ConfirmationsTotal,
		m.AvailabilityDuration,
		m.ExpiredLocksSwept,
	)

	return m
}

// ServiceName возвращает значение лейбла service
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// Методы ниже безопасны для nil-получателя: при выключенных метриках
// в use cases передаётся (*Metrics)(nil)

// RecordLock учитывает попытку блокировки слота (created, refreshed, conflict, error)
func (m *Metrics) RecordLock(result string) {
	if m == nil {
		return
	}
	m.LocksTotal.WithLabelValues(m.serviceName, result).Inc()
}

// RecordConfirmation учитывает попытку подтверждения (confirmed, lock_lost, conflict, error)
func (m *Metrics) RecordConfirmation(result string) {
	if m == nil {
		return
	}
	m.ConfirmationsTotal.WithLabelValues(m.serviceName, result).Inc()
}

// ObserveAvailability учитывает время расчета доступности (dates, slots, chains)
func (m *Metrics) ObserveAvailability(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.AvailabilityDuration.WithLabelValues(m.serviceName, kind).Observe(d.Seconds())
}

// RecordSweep учитывает удаленные просроченные блокировки
func (m *Metrics) RecordSweep(removed int64) {
	if m == nil || removed <= 0 {
		return
	}
	m.ExpiredLocksSwept.WithLabelValues(m.serviceName).Add(float64(removed))
}
