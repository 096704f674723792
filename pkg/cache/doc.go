// Package cache provides the Redis-backed proxy cache for home-page widgets.
//
// The cache is byte-transparent: routes store normalized upstream JSON under
// fixed keys with endpoint-specific TTLs, and a hit is returned to the
// browser without touching the upstream. Redis is optional; without it the
// manager silently degrades to pass-through.
//
// # Basic Usage
//
//	manager := cache.NewManager(redisClient) // nil client disables caching
//
//	payload, err := manager.Get(ctx, cache.KeyChefs)
//	if err == cache.ErrCacheMiss {
//		// fetch from the Java backend, then:
//		_ = manager.Set(ctx, cache.KeyChefs, chefs, cache.TTLChefs)
//	}
//
// # Invalidation
//
// Invalidation is best-effort. A failed delete is logged by the caller and
// swallowed; the entry then ages out at its natural TTL.
//
// # Metrics
//
// The manager exports Prometheus metrics:
//
//   - homeproxy_cache_hits_total{key} - Cache hits
//   - homeproxy_cache_misses_total{key} - Cache misses
//   - homeproxy_cache_errors_total{operation} - Operation errors
package cache
