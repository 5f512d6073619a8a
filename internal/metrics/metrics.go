package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Resolve outcomes: HIT, MISS, PLACEHOLDER, THROTTLED, INVALID
	ResolveRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_resolve_requests_total",
			Help: "Total number of image resolve requests by outcome",
		},
		[]string{"status"},
	)

	ResolveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "image_resolve_duration_seconds",
			Help:    "Duration of image resolve requests",
			Buckets: []float64{.005, .025, .1, .5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"status"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache record hits by level",
		},
		[]string{"level"},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of lookups that missed every cache level",
		},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_errors_total",
			Help: "Total number of cache layer errors",
		},
		[]string{"level", "reason"},
	)

	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cache_operation_duration_seconds",
			Help:    "Duration of cache operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "level"},
	)

	// L1 capacity metrics only (in-memory layer)
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_capacity_bytes",
			Help: "L1 cache capacity in bytes",
		},
		[]string{"level"},
	)

	CacheUsed = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_used_bytes",
			Help: "L1 cache used space in bytes",
		},
		[]string{"level"},
	)

	CacheKeys = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_keys",
			Help: "Number of records held by a cache level",
		},
		[]string{"level"},
	)

	ProviderAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_provider_attempts_total",
			Help: "Total number of generation or search attempts by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_rate_limited_total",
			Help: "Total number of cache-miss requests rejected by the rate limiter",
		},
	)
)

// RecordResolve records the outcome and duration of one resolve request
func RecordResolve(status string, duration time.Duration) {
	ResolveRequests.WithLabelValues(status).Inc()
	ResolveDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordCacheHit records a hit served by level
func RecordCacheHit(level string) {
	CacheHits.WithLabelValues(level).Inc()
}

// RecordCacheMiss records a lookup that missed every level
func RecordCacheMiss() {
	CacheMisses.Inc()
}

// RecordCacheError records a cache layer failure
func RecordCacheError(level, reason string) {
	CacheErrors.WithLabelValues(level, reason).Inc()
}

// RecordProviderAttempt records one attempt of the resolve loop
func RecordProviderAttempt(provider, outcome string) {
	ProviderAttempts.WithLabelValues(provider, outcome).Inc()
}

// RecordThrottled records a rate-limited request
func RecordThrottled() {
	RateLimited.Inc()
}

// UpdateL1CacheCapacity updates L1 cache capacity metrics only
func UpdateL1CacheCapacity(capacity, used int64) {
	CacheCapacity.WithLabelValues("l1").Set(float64(capacity))
	CacheUsed.WithLabelValues("l1").Set(float64(used))
}

// UpdateCacheKeys sets the record count of level
func UpdateCacheKeys(level string, count int64) {
	CacheKeys.WithLabelValues(level).Set(float64(count))
}

// TimeCacheOperation returns a timer function for measuring a cache operation
func TimeCacheOperation(operation, level string) func() {
	timer := prometheus.NewTimer(CacheOperationDuration.WithLabelValues(operation, level))
	return func() {
		timer.ObserveDuration()
	}
}
