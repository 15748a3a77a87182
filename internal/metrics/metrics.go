// Moodreel - Mood-Based Movie Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Upstream metrics
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodreel_upstream_request_duration_seconds",
			Help:    "Duration of outbound calls to TMDB and Gemini",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"upstream", "operation", "outcome"}, // outcome: ok, error
	)

	InferenceFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodreel_inference_fallbacks_total",
			Help: "Genre inference calls that degraded to the fallback genre",
		},
		[]string{"reason"}, // transport, status, circuit_open, no_array, parse, not_configured
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodreel_recommendations_total",
			Help: "Recommendation requests by catalog path and outcome",
		},
		[]string{"path", "outcome"}, // path: discover, popular; outcome: ok, error
	)

	HistoryWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodreel_history_write_failures_total",
			Help: "History entries that could not be recorded after a successful recommendation",
		},
	)

	// Catalog response cache
	CatalogCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodreel_catalog_cache_hits_total",
			Help: "Catalog responses served from cache",
		},
		[]string{"operation"},
	)

	CatalogCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodreel_catalog_cache_misses_total",
			Help: "Catalog responses fetched from TMDB",
		},
		[]string{"operation"},
	)

	// Store metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodreel_db_query_duration_seconds",
			Help:    "Duration of favorites and history queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodreel_db_query_errors_total",
			Help: "Total number of favorites and history query errors",
		},
		[]string{"operation", "table"},
	)

	DBAvailable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moodreel_db_available",
			Help: "1 when the relational store connected, 0 when it is unavailable",
		},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records one served API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up or down.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamCall records one outbound request.
func RecordUpstreamCall(upstream, operation string, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequestDuration.WithLabelValues(upstream, operation, outcome).Observe(duration.Seconds())
}

// RecordDBQuery records a store query.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordRecommendation records which catalog path served a recommendation.
func RecordRecommendation(path string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	RecommendationsTotal.WithLabelValues(path, outcome).Inc()
}

// SetDBAvailable publishes the lazy handle's resolved state.
func SetDBAvailable(ok bool) {
	if ok {
		DBAvailable.Set(1)
	} else {
		DBAvailable.Set(0)
	}
}
