package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatusOK labels a tool call that produced a result.
const StatusOK = "ok"

// Metrics holds all Prometheus metrics. Collectors live on a private
// registry so several instances can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// Tool metrics
	ToolCalls    *prometheus.CounterVec
	ToolDuration *prometheus.HistogramVec

	// Browser metrics
	PagesListed prometheus.Gauge

	// Sanitizer metrics
	SanitizePasses      prometheus.Histogram
	SanitizeBytes       *prometheus.CounterVec
	SanitizeUnconverged prometheus.Counter
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		ToolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devtools_mcp_tool_calls_total",
				Help: "Total number of tool calls by outcome",
			},
			[]string{"tool", "status"},
		),
		ToolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "devtools_mcp_tool_duration_seconds",
				Help:    "Tool call duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"tool"},
		),

		PagesListed: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "devtools_mcp_pages",
				Help: "Number of page targets seen by the last listing",
			},
		),

		SanitizePasses: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "devtools_mcp_sanitize_passes",
				Help:    "Passes needed for markup to reach a fixed point",
				Buckets: []float64{1, 2, 3, 4, 5, 10},
			},
		),
		SanitizeBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devtools_mcp_sanitize_bytes_total",
				Help: "Markup bytes entering and leaving the sanitizer",
			},
			[]string{"direction"},
		),
		SanitizeUnconverged: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "devtools_mcp_sanitize_unconverged_total",
				Help: "Sanitizer runs that hit the pass limit",
			},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordToolCall records a tool call. status is StatusOK or an error kind.
func (m *Metrics) RecordToolCall(tool, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ToolCalls.WithLabelValues(tool, status).Inc()
	m.ToolDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordSanitize records one sanitizer run
func (m *Metrics) RecordSanitize(inBytes, outBytes, passes int, converged bool) {
	if m == nil {
		return
	}
	m.SanitizePasses.Observe(float64(passes))
	m.SanitizeBytes.WithLabelValues("in").Add(float64(inBytes))
	m.SanitizeBytes.WithLabelValues("out").Add(float64(outBytes))
	if !converged {
		m.SanitizeUnconverged.Inc()
	}
}

// SetPages sets the number of listed page targets
func (m *Metrics) SetPages(count int) {
	if m == nil {
		return
	}
	m.PagesListed.Set(float64(count))
}
