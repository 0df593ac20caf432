// Package metrics defines Prometheus metrics for the knowledge base service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "knowbase_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "knowbase_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "knowbase_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	DocumentCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "knowbase_documents_total",
			Help: "Total knowledge document count",
		},
	)

	StatsRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "knowbase_stats_aggregation_duration_seconds",
			Help:    "Statistics aggregation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	IngestedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "knowbase_documents_ingested_total",
			Help: "Total documents ingested since process start",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		DocumentCount, StatsRequestDuration, IngestedTotal,
	)
}
