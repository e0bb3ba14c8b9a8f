package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ouvidoria_cache_hits_total",
		Help: "Cache lookups served from Redis.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ouvidoria_cache_misses_total",
		Help: "Cache lookups that fell through to the backing store.",
	})

	CacheDegraded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ouvidoria_cache_degraded_total",
		Help: "Lookups computed directly because Redis was unavailable.",
	})

	CacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ouvidoria_cache_invalidations_total",
		Help: "Keys removed by exact or pattern invalidation.",
	})

	ManifestationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ouvidoria_manifestations_created_total",
		Help: "Manifestations created, by category.",
	}, []string{"category"})
)
