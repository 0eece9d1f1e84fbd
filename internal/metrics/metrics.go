// Package metrics provides Prometheus metrics for the cost wizard service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	GatewayCalls    *prometheus.CounterVec
	GatewayDuration *prometheus.HistogramVec
	Transitions     *prometheus.CounterVec
	SavedProjects   *prometheus.CounterVec
	StaleResponses  prometheus.Counter
	ActiveSessions  prometheus.Gauge
	SessionsEvicted prometheus.Counter

	registry *prometheus.Registry
}

// New creates and registers all metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		GatewayCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wizard_gateway_calls_total",
				Help: "Calls to the estimation backend by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		GatewayDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wizard_gateway_duration_seconds",
				Help:    "Estimation backend latency by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wizard_transitions_total",
				Help: "Wizard screen transitions by target screen.",
			},
			[]string{"screen"},
		),
		SavedProjects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wizard_saved_projects_total",
				Help: "Projects persisted by source.",
			},
			[]string{"source"},
		),
		StaleResponses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wizard_stale_estimate_responses_total",
				Help: "Estimate responses discarded because the session moved on.",
			},
		),
		ActiveSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wizard_active_sessions",
				Help: "Number of live wizard sessions.",
			},
		),
		SessionsEvicted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wizard_sessions_evicted_total",
				Help: "Idle sessions removed by the sweeper.",
			},
		),
		registry: reg,
	}

	reg.MustRegister(m.GatewayCalls)
	reg.MustRegister(m.GatewayDuration)
	reg.MustRegister(m.Transitions)
	reg.MustRegister(m.SavedProjects)
	reg.MustRegister(m.StaleResponses)
	reg.MustRegister(m.ActiveSessions)
	reg.MustRegister(m.SessionsEvicted)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordGatewayCall counts one estimator call and observes its latency.
// A nil receiver is a no-op so callers can run without metrics.
func (m *Metrics) RecordGatewayCall(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.GatewayCalls.WithLabelValues(operation, outcome).Inc()
	m.GatewayDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordTransition counts a move to screen.
func (m *Metrics) RecordTransition(screen string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(screen).Inc()
}

// RecordSaved counts a persisted project.
func (m *Metrics) RecordSaved(source string) {
	if m == nil {
		return
	}
	m.SavedProjects.WithLabelValues(source).Inc()
}

// RecordStale counts a discarded late estimate response.
func (m *Metrics) RecordStale() {
	if m == nil {
		return
	}
	m.StaleResponses.Inc()
}

// SetActiveSessions sets the live session gauge.
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Set(float64(n))
}

// RecordEvicted counts sessions removed by the sweeper.
func (m *Metrics) RecordEvicted(n int) {
	if m == nil {
		return
	}
	m.SessionsEvicted.Add(float64(n))
}
