package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run outcomes used as the "result" label.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Manager manages all Prometheus metrics for the ranker.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Ranking runs
	runs             *prometheus.CounterVec
	runErrors        *prometheus.CounterVec
	runDuration      prometheus.Histogram
	lastParticipants prometheus.Gauge

	// Candidate teams
	teamsEvaluated prometheus.Counter
	teamsVetoed    prometheus.Counter
	teamsQualified prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System
	memoryUsage    prometheus.Gauge
	goroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "parabellum",
		subsystem:        "teams",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.runs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "runs_total",
		Help:      "Ranking runs by result",
	}, []string{"result"})

	m.runErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_errors_total",
		Help:      "Failed ranking runs by error kind",
	}, []string{"kind"})

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "Time to build the matrix and rank every team",
		Buckets:   m.histogramBuckets,
	})

	m.lastParticipants = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_participants",
		Help:      "Roster size of the most recent successful run",
	})

	m.teamsEvaluated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluated_total",
		Help:      "Candidate teams scored",
	})

	m.teamsVetoed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "vetoed_total",
		Help:      "Candidate teams excluded by a zero-scoring pair",
	})

	m.teamsQualified = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "qualified_total",
		Help:      "Candidate teams that survived the veto",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by endpoint and method",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})

	m.memoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Heap bytes allocated",
	})

	m.goroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutines",
		Help:      "Number of live goroutines",
	})
}

// RecordRun records a successful ranking run.
func (m *Manager) RecordRun(d time.Duration, participants, evaluated, vetoed, qualified int) {
	if !m.enabled {
		return
	}
	m.runs.WithLabelValues(ResultOK).Inc()
	m.runDuration.Observe(d.Seconds())
	m.lastParticipants.Set(float64(participants))
	m.teamsEvaluated.Add(float64(evaluated))
	m.teamsVetoed.Add(float64(vetoed))
	m.teamsQualified.Add(float64(qualified))
}

// RecordRunError records a failed run under its error kind.
func (m *Manager) RecordRunError(kind string) {
	if !m.enabled {
		return
	}
	m.runs.WithLabelValues(ResultError).Inc()
	m.runErrors.WithLabelValues(kind).Inc()
}

// RecordHTTPRequest records one served request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, d time.Duration) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method).Observe(d.Seconds())
}

// UpdateSystemMemoryUsage sets the allocated heap size.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if !m.enabled {
		return
	}
	m.memoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the live goroutine count.
func (m *Manager) UpdateSystemGoroutineCount(n int) {
	if !m.enabled {
		return
	}
	m.goroutineCount.Set(float64(n))
}

// Package-level helpers on the global manager.

// RecordRun records a successful ranking run.
func RecordRun(d time.Duration, participants, evaluated, vetoed, qualified int) {
	globalManager.RecordRun(d, participants, evaluated, vetoed, qualified)
}

// RecordRunError records a failed run under its error kind.
func RecordRunError(kind string) {
	globalManager.RecordRunError(kind)
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(endpoint, method, statusCode string, d time.Duration) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, d)
}

// UpdateSystemMemoryUsage sets the allocated heap size.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.UpdateSystemMemoryUsage(bytes)
}

// UpdateSystemGoroutineCount sets the live goroutine count.
func UpdateSystemGoroutineCount(n int) {
	globalManager.UpdateSystemGoroutineCount(n)
}

// GetRegistry returns the registry the global manager registers on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
