// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "platelist_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	APIRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "platelist_api_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)

	// Ranking
	ReorderPlans = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platelist_reorder_plans_total",
			Help: "Reorder plans computed, by outcome",
		},
		[]string{"outcome"}, // "applied", "preview", "conflict", "invalid"
	)

	ReorderRankUpdates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "platelist_reorder_rank_updates",
			Help:    "Rank updates emitted per applied reorder",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		},
	)

	RatingConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "platelist_reorder_rating_conflicts_total",
			Help: "Moves whose rating fell outside the bound implied by the new neighbors",
		},
	)

	// Recommendations
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "platelist_recommendation_duration_seconds",
			Help:    "Time to build a preference model and score candidates",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "platelist_recommendation_candidates",
			Help:    "Candidates scored per recommendation request",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	RecommendationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "platelist_recommendation_cache_hits_total",
			Help: "Recommendation requests served from cache",
		},
	)

	RecommendationCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "platelist_recommendation_cache_misses_total",
			Help: "Recommendation requests that had to be scored",
		},
	)

	// Events
	SSEClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "platelist_sse_clients",
			Help: "Currently connected event-stream clients",
		},
	)

	SSEEventsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "platelist_sse_events_dropped_total",
			Help: "Events dropped because a client buffer was full",
		},
	)
)

// RecordAPIRequest records the latency of one API request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// RecordReorder records a reorder outcome. updates and conflict only count for applied moves.
func RecordReorder(outcome string, updates int, conflict bool) {
	ReorderPlans.WithLabelValues(outcome).Inc()
	if outcome != "applied" {
		return
	}
	ReorderRankUpdates.Observe(float64(updates))
	if conflict {
		RatingConflicts.Inc()
	}
}

// RecordRecommendation records one scoring pass.
func RecordRecommendation(candidates int, duration time.Duration) {
	RecommendationCandidates.Observe(float64(candidates))
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordCacheLookup counts a recommendation cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendationCacheHits.Inc()
		return
	}
	RecommendationCacheMisses.Inc()
}
