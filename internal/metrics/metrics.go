// Package metrics declares the Prometheus collectors of the recommender.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProfileCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lineup_profile_cache_hits_total",
			Help: "Total number of festival days served from the profile cache",
		},
	)

	ProfileCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lineup_profile_cache_misses_total",
			Help: "Total number of festival days whose profiles had to be built",
		},
	)

	// ArtistLookups counts per-artist feature lookups during profile builds.
	ArtistLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lineup_artist_lookups_total",
			Help: "Total number of artist feature lookups by outcome",
		},
		[]string{"outcome"}, // "profiled", "no_match", "error"
	)

	ProgramsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lineup_programs_resolved_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // "ok", "not_found", "insufficient_data", "invalid_vector", "error"
	)

	ResolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lineup_resolve_duration_seconds",
			Help:    "Duration of slot resolution in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	WarmJobsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lineup_warm_jobs_dropped_total",
			Help: "Total number of cache warm-up jobs dropped because the queue was full",
		},
	)

	// CatalogRequests counts HTTP attempts against the music catalog.
	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lineup_catalog_requests_total",
			Help: "Total number of catalog HTTP attempts by outcome",
		},
		[]string{"outcome"}, // "ok", "retry", "error"
	)

	CatalogBreakerOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lineup_catalog_breaker_open",
			Help: "1 while the catalog circuit breaker is open",
		},
	)
)
