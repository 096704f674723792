// Package metrics provides the centralized Prometheus metrics registry for
// the home proxy. All metrics are defined in their respective packages
// (cache, upstream) to maintain modularity and avoid circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the proxy.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - homeproxy_cache_hits_total{key} (Counter): Cache hits by key
//   - homeproxy_cache_misses_total{key} (Counter): Cache misses by key
//   - homeproxy_cache_errors_total{operation} (Counter): Cache operation errors
//
// Upstream Metrics (pkg/upstream):
//   - homeproxy_upstream_requests_total{endpoint, status} (Counter): Total backend requests by endpoint and HTTP status
//   - homeproxy_upstream_request_duration_seconds{endpoint} (Histogram): Backend request duration by endpoint
//   - homeproxy_upstream_errors_total{class} (Counter): Backend errors by class (client, server, network)
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(homeproxy_cache_hits_total[5m])) /
//   (sum(rate(homeproxy_cache_hits_total[5m])) + sum(rate(homeproxy_cache_misses_total[5m])))
//
//   # Backend Error Rate
//   rate(homeproxy_upstream_errors_total[5m])
//
//   # P95 Backend Latency
//   histogram_quantile(0.95, rate(homeproxy_upstream_request_duration_seconds_bucket[5m]))
