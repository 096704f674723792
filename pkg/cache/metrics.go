package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks proxy cache hits by key.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homeproxy_cache_hits_total",
			Help: "Total number of proxy cache hits",
		},
		[]string{"key"},
	)

	// CacheMisses tracks proxy cache misses by key.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homeproxy_cache_misses_total",
			Help: "Total number of proxy cache misses",
		},
		[]string{"key"},
	)

	// CacheErrors tracks cache operation errors.
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homeproxy_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
