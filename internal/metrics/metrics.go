// Package metrics defines the Prometheus collectors for the resolution
// engine and exposes the scrape handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the engine.
type Metrics struct {
	QueriesTotal  *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
	ResultCount   *prometheus.HistogramVec
	FetchesTotal  *prometheus.CounterVec
	LoadDuration  prometheus.Histogram
	RecordCount   prometheus.Gauge
}

// New creates the collectors and registers them with reg. Passing nil
// registers with the default registry; tests pass their own registry so
// that repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drugresolver_queries_total",
				Help: "Total queries by operation (search, fuzzy_search, correct_name, find_exact) and outcome (hit, zero_result).",
			},
			[]string{"operation", "outcome"},
		),
		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "drugresolver_query_duration_seconds",
				Help:    "Query latency in seconds by operation.",
				Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
			},
			[]string{"operation"},
		),
		ResultCount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "drugresolver_result_count",
				Help:    "Number of results returned per query by operation.",
				Buckets: []float64{0, 1, 3, 5, 10, 25, 50},
			},
			[]string{"operation"},
		),
		FetchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drugresolver_dataset_fetches_total",
				Help: "Dataset fetch attempts by status (ok, error).",
			},
			[]string{"status"},
		),
		LoadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "drugresolver_load_duration_seconds",
				Help:    "Total fetch+parse+index-build duration in seconds.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		RecordCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "drugresolver_records",
				Help: "Number of records in the loaded reference dataset.",
			},
		),
	}

	reg.MustRegister(
		m.QueriesTotal,
		m.QueryDuration,
		m.ResultCount,
		m.FetchesTotal,
		m.LoadDuration,
		m.RecordCount,
	)

	return m
}

// ObserveQuery records one completed query.
func (m *Metrics) ObserveQuery(operation string, seconds float64, resultCount int) {
	outcome := "hit"
	if resultCount == 0 {
		outcome = "zero_result"
	}
	m.QueriesTotal.WithLabelValues(operation, outcome).Inc()
	m.QueryDuration.WithLabelValues(operation).Observe(seconds)
	m.ResultCount.WithLabelValues(operation).Observe(float64(resultCount))
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
