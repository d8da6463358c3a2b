// Gastrograph - Condition-Based Restaurant Recommendation Service
// Copyright 2026 Gastrograph Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gastrograph/gastrograph

// Package metrics provides Prometheus instrumentation for Gastrograph:
// HTTP endpoint latency and throughput, place-search fanout outcomes,
// upstream collaborator calls, circuit breaker state, and database queries.
package metrics

import (
	"strconv"
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
		[]string{"endpoint", "method", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// Recommendation engine metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by strategy",
		},
		[]string{"strategy"}, // "food_type", "quick", "condition_rule"
	)

	RecommendFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_fallbacks_total",
			Help: "Total number of recommendations that fell back to the secondary food type",
		},
	)

	RecommendEmptyResultsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_empty_results_total",
			Help: "Total number of recommendations that returned zero restaurants",
		},
	)

	// Place-search collaborator metrics
	PlaceSearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "place_searches_total",
			Help: "Total number of keyword searches against the place-search API",
		},
		[]string{"outcome"}, // "success", "failure"
	)

	PlaceCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "place_call_duration_seconds",
			Help:    "Duration of place-search API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "search", "reviews", "images"
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total requests through the circuit breaker by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Database metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of database query errors",
		},
		[]string{"operation"},
	)
)

// RecordAPIRequest records an API request with its outcome and duration.
func RecordAPIRequest(endpoint, method string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

// RecordDBQuery records a database query duration, and the error if any.
func RecordDBQuery(operation string, start time.Time, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordPlaceCall records an upstream place-search API call.
func RecordPlaceCall(operation string, start time.Time, err error) {
	PlaceCallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	if operation == "search" {
		PlaceSearchesTotal.WithLabelValues(outcome).Inc()
	}
}
