package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// InvocationMetrics records the outcome of contract invocations per operation.
type InvocationMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewInvocationMetrics registers the invocation metrics on the provided
// registerer. A nil registerer yields a no-op recorder.
func NewInvocationMetrics(reg prometheus.Registerer) *InvocationMetrics {
	if reg == nil {
		return &InvocationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "invocation_duration_seconds",
		Help:    "Duration of contract invocations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invocation_success",
		Help: "Committed contract invocations.",
	}, []string{"operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invocation_failure",
		Help: "Discarded contract invocations by error code.",
	}, []string{"operation", "code"})
	reg.MustRegister(duration, success, failure)
	return &InvocationMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named operation.
func (m *InvocationMetrics) ObserveDuration(operation string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncSuccess increments the commit counter for the named operation.
func (m *InvocationMetrics) IncSuccess(operation string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncFailure increments the discard counter for the named operation and code.
func (m *InvocationMetrics) IncFailure(operation, code string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(operation), normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
