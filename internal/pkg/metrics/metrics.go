package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "exam_admission"

// Metrics holds the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	logins       *prometheus.CounterVec
	applications prometheus.Counter
	decisions    *prometheus.CounterVec
	seats        prometheus.Counter
	scores       prometheus.Counter
	verdicts     *prometheus.CounterVec
	thresholds   prometheus.Counter
	auditErrors  prometheus.Counter
}

// New creates the collectors and registers them on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
			},
			[]string{"method", "path"},
		),
		logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "logins_total",
				Help:      "Login attempts by outcome.",
			},
			[]string{"outcome"},
		),
		applications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "applications",
			Name:      "submitted_total",
			Help:      "Applications submitted.",
		}),
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "applications",
				Name:      "decisions_total",
				Help:      "Application decisions by resulting status.",
			},
			[]string{"status"},
		),
		seats: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rooms",
			Name:      "seats_assigned_total",
			Help:      "Seats assigned by allocation passes.",
		}),
		scores: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scores",
			Name:      "entries_total",
			Help:      "Score entries recorded.",
		}),
		verdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "admission",
				Name:      "verdicts_total",
				Help:      "Admission verdicts computed by status.",
			},
			[]string{"status"},
		),
		thresholds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "admission",
			Name:      "threshold_upserts_total",
			Help:      "Admission threshold writes.",
		}),
		auditErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "audit",
			Name:      "write_failures_total",
			Help:      "Audit records that could not be stored.",
		}),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.logins,
		m.applications,
		m.decisions,
		m.seats,
		m.scores,
		m.verdicts,
		m.thresholds,
		m.auditErrors,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the registered metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one handled request
func (m *Metrics) ObserveHTTP(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(seconds)
}

// Login records a login attempt
func (m *Metrics) Login(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

// ApplicationSubmitted records a new application
func (m *Metrics) ApplicationSubmitted() {
	if m == nil {
		return
	}
	m.applications.Inc()
}

// Decision records an application decision
func (m *Metrics) Decision(status string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(status).Inc()
}

// SeatsAssigned adds n allocated seats
func (m *Metrics) SeatsAssigned(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.seats.Add(float64(n))
}

// ScoreEntered records a score entry
func (m *Metrics) ScoreEntered() {
	if m == nil {
		return
	}
	m.scores.Inc()
}

// Verdict records a computed verdict
func (m *Metrics) Verdict(status string) {
	if m == nil {
		return
	}
	m.verdicts.WithLabelValues(status).Inc()
}

// ThresholdSet records a threshold upsert
func (m *Metrics) ThresholdSet() {
	if m == nil {
		return
	}
	m.thresholds.Inc()
}

// AuditFailed records a dropped audit record
func (m *Metrics) AuditFailed() {
	if m == nil {
		return
	}
	m.auditErrors.Inc()
}
