// Package metrics provides Prometheus metrics collection for the recommendation service.
// It exports HTTP request metrics plus pipeline metrics:
//   - http_request_total / http_request_duration_seconds / http_request_in_flight
//   - recommendations_total: Counter with outcome label (ok or an error kind)
//   - generation_duration_seconds: Histogram with provider label
//   - query_expansion_fallbacks_total: model expansion failures absorbed by the dictionary
//   - monograph_index_chunks: Gauge with the size of the current index snapshot
//
// All metrics are registered with the Prometheus default registry during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (clients seen since last cleanup)",
		},
	)

	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generation_duration_seconds",
			Help:    "Latency of text generation calls",
			Buckets: []float64{.25, .5, 1, 2, 4, 8, 15, 30, 60},
		},
		[]string{"provider"},
	)

	ExpansionFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "query_expansion_fallbacks_total",
			Help: "Query expansions that fell back to dictionary terms only",
		},
	)

	IndexChunks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "monograph_index_chunks",
			Help: "Number of monograph chunks in the current index snapshot",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(RecommendationsTotal)
	prometheus.MustRegister(GenerationDuration)
	prometheus.MustRegister(ExpansionFallbacks)
	prometheus.MustRegister(IndexChunks)
}
