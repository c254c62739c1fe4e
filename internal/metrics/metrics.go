// Roomies - Roommate and Room Listing Marketplace
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roomies

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roomies_db_query_duration_seconds",
			Help:    "Duration of catalog database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomies_db_query_errors_total",
			Help: "Total number of catalog database query errors",
		},
		[]string{"operation", "error_type"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomies_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roomies_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roomies_api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomies_api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "roomies_recommendation_duration_seconds",
			Help:    "Time to produce a recommendation list",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"outcome"}, // served, empty, error
	)

	RecommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roomies_recommendations_returned",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	PreferenceUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomies_preference_updates_total",
			Help: "Preference recomputations triggered by likes and explicit requests",
		},
		[]string{"trigger", "result"}, // trigger: like, unlike, api
	)

	LikesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomies_likes_total",
			Help: "Like and unlike operations by result",
		},
		[]string{"action", "result"},
	)

	// Engine state, refreshed by the cache maintenance service
	RecommendGeneration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roomies_recommend_vocabulary_generation",
			Help: "Current feature vocabulary generation",
		},
	)

	RecommendVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roomies_recommend_vocabulary_size",
			Help: "Number of dimensions in the current feature vocabulary",
		},
	)

	RecommendCacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "roomies_recommend_cache_entries",
			Help: "Entries held by each recommendation cache",
		},
		[]string{"cache"},
	)

	RecommendCacheHitRate = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "roomies_recommend_cache_hit_rate",
			Help: "Hit rate percentage of each recommendation cache",
		},
		[]string{"cache"},
	)

	RecommendUnknownFeatures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "roomies_recommend_unknown_features",
			Help: "Listing attribute names missing from the vocabulary, by kind, since start",
		},
		[]string{"kind"},
	)

	RecommendVocabularyMisses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roomies_recommend_vocabulary_misses",
			Help: "Lookups of names absent from the current vocabulary generation",
		},
	)

	RecommendCachePurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roomies_recommend_cache_purged_total",
			Help: "Expired recommendation cache entries removed by maintenance",
		},
	)

	// Peer Index Metrics
	PeerIndexEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roomies_peer_index_entries",
			Help: "Preference vectors held by the persistent peer index",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "roomies_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomies_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker by result",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "roomies_circuit_breaker_consecutive_failures",
			Help: "Current consecutive failures seen by the circuit breaker",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roomies_circuit_breaker_state_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, errorType(err)).Inc()
	}
}

// errorType buckets an error into a low-cardinality label value.
func errorType(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "other"
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one recommendation request.
func RecordRecommendation(duration time.Duration, returned int, err error) {
	outcome := "served"
	switch {
	case err != nil:
		outcome = "error"
	case returned == 0:
		outcome = "empty"
	}
	RecommendationDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	if err == nil {
		RecommendationsReturned.Observe(float64(returned))
	}
}

// RecordPreferenceUpdate records a preference recomputation.
func RecordPreferenceUpdate(trigger string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	PreferenceUpdates.WithLabelValues(trigger, result).Inc()
}

// RecordLike records a like or unlike attempt.
func RecordLike(action, result string) {
	LikesTotal.WithLabelValues(action, result).Inc()
}

// CacheSnapshot is the per-cache slice of engine state exported as gauges.
type CacheSnapshot struct {
	Name    string
	Entries int64
	HitRate float64
}

// EngineSnapshot is the engine state exported as gauges.
type EngineSnapshot struct {
	Generation       uint64
	VocabularySize   int
	VocabularyMisses int64
	Caches           []CacheSnapshot
	UnknownFeatures  map[string]int64
}

// UpdateEngineGauges publishes an engine snapshot.
func UpdateEngineGauges(s EngineSnapshot) {
	RecommendGeneration.Set(float64(s.Generation))
	RecommendVocabularySize.Set(float64(s.VocabularySize))
	RecommendVocabularyMisses.Set(float64(s.VocabularyMisses))
	for _, c := range s.Caches {
		RecommendCacheEntries.WithLabelValues(c.Name).Set(float64(c.Entries))
		RecommendCacheHitRate.WithLabelValues(c.Name).Set(c.HitRate)
	}
	for kind, n := range s.UnknownFeatures {
		RecommendUnknownFeatures.WithLabelValues(kind).Set(float64(n))
	}
}
