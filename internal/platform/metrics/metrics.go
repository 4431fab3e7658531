package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	RegistryRequests *prometheus.CounterVec
	RegistryLatency  *prometheus.HistogramVec
	SessionTimeouts  prometheus.Counter
	SessionResumes   *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		RegistryRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mamacare_registry_requests_total",
			Help: "Registry calls by registry, method and response code",
		}, []string{"registry", "method", "code"}),
		RegistryLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mamacare_registry_request_duration_seconds",
			Help:    "Registry call latency by registry and method",
			Buckets: prometheus.DefBuckets,
		}, []string{"registry", "method"}),
		SessionTimeouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mamacare_session_timeouts_total",
			Help: "Sessions diverted by the activity-gap interrupt",
		}),
		SessionResumes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mamacare_session_resume_choices_total",
			Help: "Recovery prompt outcomes by choice",
		}, []string{"choice"}),
	}
}

// ObserveRegistryRequest records one registry call. A code of 0 means the
// transport failed before a response arrived.
func (m *Metrics) ObserveRegistryRequest(registry, method string, code int, d time.Duration) {
	m.RegistryRequests.WithLabelValues(registry, method, strconv.Itoa(code)).Inc()
	m.RegistryLatency.WithLabelValues(registry, method).Observe(d.Seconds())
}

// IncSessionTimeout counts one consumed activity-gap interrupt.
func (m *Metrics) IncSessionTimeout() {
	m.SessionTimeouts.Inc()
}

// IncSessionResume counts a recovery prompt outcome.
func (m *Metrics) IncSessionResume(choice string) {
	m.SessionResumes.WithLabelValues(choice).Inc()
}
