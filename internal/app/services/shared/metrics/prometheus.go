// Package metrics provides Prometheus metrics for the patient chart service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds all application metrics
type Metrics struct {
	ChartQueries          *prometheus.CounterVec
	ChartQueryDuration    prometheus.Histogram
	StaleChartResponses   prometheus.Counter
	ReportsCreated        *prometheus.CounterVec
	ActiveViews           prometheus.Gauge
	CircuitBreakerState   *prometheus.GaugeVec
	ReportEventsPublished *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New creates the metrics and registers them on registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		ChartQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "patient_chart_queries_total",
			Help: "Composed patient chart queries issued, by outcome",
		}, []string{"outcome"}),
		ChartQueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "patient_chart_query_duration_seconds",
			Help:    "Composed patient chart query duration",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		StaleChartResponses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "patient_chart_stale_responses_total",
			Help: "Chart responses discarded because a newer request superseded them",
		}),
		ReportsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "diagnostic_reports_created_total",
			Help: "Diagnostic reports created from the patient chart, by outcome",
		}, []string{"outcome"}),
		ActiveViews: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "patient_views_active",
			Help: "Patient views currently held in memory",
		}),
		CircuitBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		}, []string{"name"}),
		ReportEventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "diagnostic_report_events_published_total",
			Help: "Report-created events published to the message broker, by outcome",
		}, []string{"outcome"}),
		gatherer: registry,
	}

	registry.MustRegister(
		m.ChartQueries,
		m.ChartQueryDuration,
		m.StaleChartResponses,
		m.ReportsCreated,
		m.ActiveViews,
		m.CircuitBreakerState,
		m.ReportEventsPublished,
	)

	return m
}

// NewNop returns metrics registered on a private registry, for tests and tools.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

// Handler returns the HTTP handler for metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
