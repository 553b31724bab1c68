package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusExporter exports metrics to Prometheus format.
type PrometheusExporter struct {
	collector *Collector

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

// NewPrometheusExporter creates a new Prometheus exporter and registers its
// metrics on reg. Deletion outcomes are read from the collector at scrape time.
func NewPrometheusExporter(collector *Collector, reg prometheus.Registerer) *PrometheusExporter {
	factory := promauto.With(reg)

	e := &PrometheusExporter{
		collector: collector,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matchday_requests_total",
				Help: "Total number of requests",
			},
			[]string{"method"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "matchday_request_duration_seconds",
				Help:    "Duration of requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
			},
			[]string{"method"},
		),
		errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "matchday_errors_total",
				Help: "Total number of failed requests",
			},
			[]string{"method"},
		),
	}

	for _, outcome := range Outcomes {
		outcome := outcome
		factory.NewCounterFunc(
			prometheus.CounterOpts{
				Name:        "matchday_event_deletions_total",
				Help:        "Total number of event delete requests by outcome",
				ConstLabels: prometheus.Labels{"outcome": outcome},
			},
			func() float64 {
				return float64(collector.DeletionCount(outcome))
			},
		)
	}

	return e
}

// RecordRequest records a request in Prometheus.
func (e *PrometheusExporter) RecordRequest(method string) {
	e.requests.WithLabelValues(method).Inc()
}

// RecordDuration records a duration in Prometheus.
func (e *PrometheusExporter) RecordDuration(method string, durationSeconds float64) {
	e.duration.WithLabelValues(method).Observe(durationSeconds)
}

// RecordError records an error in Prometheus.
func (e *PrometheusExporter) RecordError(method string) {
	e.errors.WithLabelValues(method).Inc()
}
