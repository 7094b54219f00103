// Package metrics provides Prometheus metrics for the reviewdash service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every collector exported by the service.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	importsTotal        *prometheus.CounterVec
	importRecords       *prometheus.CounterVec
	importDuration      *prometheus.HistogramVec
}

// Option configures a Manager.
type Option func(*Manager)

func WithNamespace(ns string) Option {
	return func(m *Manager) { m.namespace = ns }
}

func WithRegistry(r *prometheus.Registry) Option {
	return func(m *Manager) { m.registry = r }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{namespace: "reviewdash"}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})
	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
	m.importsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "import",
		Name:      "runs_total",
		Help:      "Import runs by kind and outcome.",
	}, []string{"kind", "status"})
	m.importRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "import",
		Name:      "records_total",
		Help:      "Imported records by kind and result.",
	}, []string{"kind", "result"})
	m.importDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "import",
		Name:      "duration_seconds",
		Help:      "Import run latency.",
		Buckets:   []float64{0.05, 0.1, 0.5, 1, 5, 15, 60},
	}, []string{"kind"})

	m.registry.MustRegister(
		m.httpRequests,
		m.httpRequestDuration,
		m.importsTotal,
		m.importRecords,
		m.importDuration,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Manager) Registry() *prometheus.Registry { return m.registry }

func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Manager) RecordHTTPRequest(route, method, status string, seconds float64) {
	m.httpRequests.WithLabelValues(route, method, status).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(seconds)
}

func (m *Manager) RecordImport(kind, status string, seconds float64) {
	m.importsTotal.WithLabelValues(kind, status).Inc()
	m.importDuration.WithLabelValues(kind).Observe(seconds)
}

func (m *Manager) RecordImportRecords(kind string, inserted, failed int) {
	m.importRecords.WithLabelValues(kind, "inserted").Add(float64(inserted))
	m.importRecords.WithLabelValues(kind, "failed").Add(float64(failed))
}

// Global manager backing the package level helpers.
var globalManager = NewManager() //nolint:gochecknoglobals // process wide metrics

func GetRegistry() *prometheus.Registry { return globalManager.Registry() }

func Handler() http.Handler { return globalManager.Handler() }

func RecordHTTPRequest(route, method, status string, seconds float64) {
	globalManager.RecordHTTPRequest(route, method, status, seconds)
}

func RecordImport(kind, status string, seconds float64) {
	globalManager.RecordImport(kind, status, seconds)
}

func RecordImportRecords(kind string, inserted, failed int) {
	globalManager.RecordImportRecords(kind, inserted, failed)
}
