package resolvers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// cacheHits tracks per-run resolution cache hits by lookup kind.
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_resolver_cache_hits_total",
		Help: "Total number of resolution cache hits by lookup kind",
	}, []string{"kind"})

	// cacheMisses tracks lookups that went to the reference store.
	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_resolver_cache_misses_total",
		Help: "Total number of resolution cache misses by lookup kind",
	}, []string{"kind"})
)
