// Package metrics holds the Prometheus collectors of the web host.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Body kinds recorded by the audit middleware.
const (
	BodyEmpty  = "empty"
	BodyText   = "text"
	BodyBinary = "binary"
)

// Reload outcomes.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics holds all Prometheus metrics for the host.
type Metrics struct {
	auditedRequests       *prometheus.CounterVec
	auditedResponses      prometheus.Counter
	auditSkippedResponses prometheus.Counter
	auditFailures         prometheus.Counter
	httpRequestsTotal     *prometheus.CounterVec
	httpRequestDuration   *prometheus.HistogramVec
	configReloads         *prometheus.CounterVec
	workerFailures        *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates a metrics instance backed by its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		auditedRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhost_audit_requests_total",
				Help: "Total number of audited requests by body kind",
			},
			[]string{"body"},
		),

		auditedResponses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "webhost_audit_responses_total",
				Help: "Total number of audited responses",
			},
		),

		auditSkippedResponses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "webhost_audit_responses_skipped_total",
				Help: "Total number of responses not audited because the request was aborted",
			},
		),

		auditFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "webhost_audit_failures_total",
				Help: "Total number of audit records that could not be written",
			},
		),

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhost_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "status_code"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webhost_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),

		configReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhost_config_reloads_total",
				Help: "Total number of configuration reload attempts by status",
			},
			[]string{"status"},
		),

		workerFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhost_worker_failures_total",
				Help: "Total number of background worker failures by worker and reason",
			},
			[]string{"worker", "reason"},
		),

		registry: registry,
	}

	registry.MustRegister(
		m.auditedRequests,
		m.auditedResponses,
		m.auditSkippedResponses,
		m.auditFailures,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.configReloads,
		m.workerFailures,
	)

	return m
}

// RecordAuditedRequest records an audited request body of the given kind.
func (m *Metrics) RecordAuditedRequest(body string) {
	m.auditedRequests.WithLabelValues(body).Inc()
}

// RecordAuditedResponse records an audited response.
func (m *Metrics) RecordAuditedResponse() {
	m.auditedResponses.Inc()
}

// RecordSkippedResponse records a response that was not audited.
func (m *Metrics) RecordSkippedResponse() {
	m.auditSkippedResponses.Inc()
}

// RecordAuditFailure records an audit record that was dropped.
func (m *Metrics) RecordAuditFailure() {
	m.auditFailures.Inc()
}

// RecordHTTPRequest records a served HTTP request.
func (m *Metrics) RecordHTTPRequest(method string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordConfigReload records a configuration reload attempt.
func (m *Metrics) RecordConfigReload(status string) {
	m.configReloads.WithLabelValues(status).Inc()
}

// RecordWorkerFailure records a background worker that returned an error or
// panicked.
func (m *Metrics) RecordWorkerFailure(worker, reason string) {
	m.workerFailures.WithLabelValues(worker, reason).Inc()
}

// Handler returns the Prometheus metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
