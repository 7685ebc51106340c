// Package metrics provides Prometheus metrics export for report generation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusExporter exports report generation metrics in Prometheus format.
type PrometheusExporter struct {
	registry *prometheus.Registry

	generations       *prometheus.CounterVec
	generationLatency *prometheus.HistogramVec
	toolCalls         *prometheus.CounterVec
	llmTokensUsed     prometheus.Counter
	pdfExports        prometheus.Counter
}

// Config configures the Prometheus exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for latency histograms (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns default Prometheus configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
	}
}

// NewPrometheusExporter creates a new Prometheus metrics exporter.
func NewPrometheusExporter(cfg Config) *PrometheusExporter {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	e := &PrometheusExporter{registry: registry}

	e.generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reportsmith",
			Subsystem: "research",
			Name:      "generations_total",
			Help:      "Report generations by depth level and status",
		},
		[]string{"level", "status"},
	)

	e.generationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reportsmith",
			Subsystem: "research",
			Name:      "generation_latency_seconds",
			Help:      "Report generation latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		},
		[]string{"level"},
	)

	e.toolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reportsmith",
			Subsystem: "research",
			Name:      "tool_calls_total",
			Help:      "Agent tool invocations by tool name",
		},
		[]string{"tool"},
	)

	e.llmTokensUsed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reportsmith",
			Subsystem: "llm",
			Name:      "tokens_total",
			Help:      "Total LLM tokens consumed",
		},
	)

	e.pdfExports = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reportsmith",
			Subsystem: "report",
			Name:      "pdf_exports_total",
			Help:      "Total PDF exports",
		},
	)

	registry.MustRegister(
		e.generations,
		e.generationLatency,
		e.toolCalls,
		e.llmTokensUsed,
		e.pdfExports,
	)

	return e
}

// RecordGeneration records one report generation attempt.
func (e *PrometheusExporter) RecordGeneration(level string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	e.generations.WithLabelValues(level, status).Inc()
	if success {
		e.generationLatency.WithLabelValues(level).Observe(duration.Seconds())
	}
}

// RecordToolCall records one agent tool invocation.
func (e *PrometheusExporter) RecordToolCall(tool string) {
	e.toolCalls.WithLabelValues(tool).Inc()
}

// RecordTokens adds to the LLM token counter.
func (e *PrometheusExporter) RecordTokens(tokens int) {
	if tokens > 0 {
		e.llmTokensUsed.Add(float64(tokens))
	}
}

// RecordPDFExport records one PDF export.
func (e *PrometheusExporter) RecordPDFExport() {
	e.pdfExports.Inc()
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (e *PrometheusExporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}
