package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorders(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry(), "salon-booking")

	m.RecordLock("created")
	m.RecordLock("created")
	m.RecordLock("conflict")
	m.RecordConfirmation("confirmed")
	m.RecordSweep(3)
	m.RecordSweep(0)
	m.ObserveAvailability("slots", 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LocksTotal.WithLabelValues("salon-booking", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LocksTotal.WithLabelValues("salon-booking", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConfirmationsTotal.WithLabelValues("salon-booking", "confirmed")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ExpiredLocksSwept.WithLabelValues("salon-booking")))
	assert.Equal(t, "salon-booking", m.ServiceName())
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordLock("created")
		m.RecordConfirmation("confirmed")
		m.ObserveAvailability("dates", time.Second)
		m.RecordSweep(1)
	})
	assert.Empty(t, m.ServiceName())
}
