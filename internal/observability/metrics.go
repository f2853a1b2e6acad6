package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type collectorMetrics struct {
	registry *prometheus.Registry

	eventsRecorded *prometheus.CounterVec
	orphansDropped prometheus.Counter
	callDuration   *prometheus.HistogramVec
	activeSessions prometheus.Gauge
	sessionsTotal  prometheus.Counter
	exportsTotal   *prometheus.CounterVec
}

var (
	metricsOnce sync.Once
	metricsInst *collectorMetrics
)

func getMetrics() *collectorMetrics {
	metricsOnce.Do(func() {
		registry := prometheus.NewRegistry()

		m := &collectorMetrics{
			registry: registry,
			eventsRecorded: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "aiobs_events_recorded_total",
					Help: "Total events recorded by the collector, by provider and status.",
				},
				[]string{"provider", "status"},
			),
			orphansDropped: prometheus.NewCounter(
				prometheus.CounterOpts{
					Name: "aiobs_orphan_events_dropped_total",
					Help: "Events submitted while no session was open and dropped.",
				},
			),
			callDuration: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "aiobs_call_duration_seconds",
					Help:    "Observed provider call duration in seconds.",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"provider", "api"},
			),
			activeSessions: prometheus.NewGauge(
				prometheus.GaugeOpts{
					Name: "aiobs_active_sessions",
					Help: "Number of currently open observation sessions.",
				},
			),
			sessionsTotal: prometheus.NewCounter(
				prometheus.CounterOpts{
					Name: "aiobs_sessions_total",
					Help: "Total observation sessions opened.",
				},
			),
			exportsTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "aiobs_exports_total",
					Help: "Total export artifacts attempted, by status.",
				},
				[]string{"status"},
			),
		}

		registry.MustRegister(
			m.eventsRecorded,
			m.orphansDropped,
			m.callDuration,
			m.activeSessions,
			m.sessionsTotal,
			m.exportsTotal,
		)

		metricsInst = m
	})

	return metricsInst
}

// EnsureRegistered initializes and registers metrics the first time it is called.
func EnsureRegistered() {
	_ = getMetrics()
}

// MetricsHandler returns an HTTP handler exposing the collector metrics.
func MetricsHandler() http.Handler {
	m := getMetrics()
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordEvent counts one recorded event and observes its call duration.
func RecordEvent(provider, api string, duration time.Duration, success bool) {
	m := getMetrics()
	status := "error"
	if success {
		status = "success"
	}
	m.eventsRecorded.WithLabelValues(provider, status).Inc()
	m.callDuration.WithLabelValues(provider, api).Observe(duration.Seconds())
}

// RecordOrphanDropped counts one event dropped because no session was open.
func RecordOrphanDropped() {
	m := getMetrics()
	m.orphansDropped.Inc()
}

// RecordSessionOpened counts a newly opened session.
func RecordSessionOpened() {
	m := getMetrics()
	m.sessionsTotal.Inc()
	m.activeSessions.Set(1)
}

// SetActiveSessions records the current open-session count.
func SetActiveSessions(count int) {
	m := getMetrics()
	m.activeSessions.Set(float64(count))
}

// RecordExport counts one flush attempt.
func RecordExport(success bool) {
	m := getMetrics()
	status := "error"
	if success {
		status = "success"
	}
	m.exportsTotal.WithLabelValues(status).Inc()
}
