package infra

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "donation"
	metricsSubsystem = "ledger"

	// OtherDenom labels donations in denominations outside the tracked set.
	OtherDenom = "other"
)

// Metrics holds the collectors updated by the host for each invocation.
type Metrics struct {
	invocations *prometheus.CounterVec
	errors      *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	donations   *prometheus.CounterVec
	tracked     map[string]struct{}
}

// NewMetrics creates the collectors and registers them on reg. Donations are
// counted per denomination only for trackedDenoms; every other denomination
// falls under OtherDenom so callers cannot grow the label set.
func NewMetrics(reg prometheus.Registerer, trackedDenoms ...string) *Metrics {
	m := &Metrics{
		tracked: make(map[string]struct{}, len(trackedDenoms)),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "invocations_total",
			Help:      "Counts contract invocations by operation",
		}, []string{"operation"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "errors_total",
			Help:      "Counts failed contract invocations by operation and error kind",
		}, []string{"operation", "kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "invocation_duration_seconds",
			Help:      "Duration of contract invocations including the store transaction",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		donations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "donations_total",
			Help:      "Counts recorded donations by denomination",
		}, []string{"denom"}),
	}
	for _, d := range trackedDenoms {
		if d != OtherDenom {
			m.tracked[d] = struct{}{}
		}
	}
	if reg != nil {
		reg.MustRegister(m.invocations, m.errors, m.duration, m.donations)
	}
	return m
}

// Observe records the outcome of one invocation. kind is empty on success.
func (m *Metrics) Observe(operation, kind string, started time.Time) {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(operation).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
	if kind != "" {
		m.errors.WithLabelValues(operation, kind).Inc()
	}
}

// IncDonation counts a recorded donation once per denomination it carries.
func (m *Metrics) IncDonation(denoms ...string) {
	if m == nil {
		return
	}
	for _, d := range denoms {
		if _, ok := m.tracked[d]; !ok {
			d = OtherDenom
		}
		m.donations.WithLabelValues(d).Inc()
	}
}
