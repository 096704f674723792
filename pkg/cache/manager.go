package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss indicates the requested key was not found in cache.
var ErrCacheMiss = errors.New("cache miss")

// Manager handles proxy caching operations with a Redis backend.
//
// The Redis client is optional: with a nil client every Get is a miss and
// Set/Delete are no-ops, so the proxy degrades to pass-through without any
// caller-visible change.
type Manager struct {
	redis *redis.Client
}

// NewManager creates a new cache manager. A nil redisClient disables caching.
func NewManager(redisClient *redis.Client) *Manager {
	return &Manager{
		redis: redisClient,
	}
}

// Enabled reports whether a Redis backend is configured.
func (m *Manager) Enabled() bool {
	return m.redis != nil
}

// Get retrieves the cached JSON payload for key.
// Returns ErrCacheMiss if the key doesn't exist or caching is disabled.
func (m *Manager) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if m.redis == nil {
		return nil, ErrCacheMiss
	}

	data, err := m.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			CacheMisses.WithLabelValues(key).Inc()
			return nil, ErrCacheMiss
		}
		CacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	CacheHits.WithLabelValues(key).Inc()
	return json.RawMessage(data), nil
}

// Set stores value under key for the given TTL. The value is JSON-marshaled,
// so anything cached here comes back byte-identical to what the route would
// have written to the response.
func (m *Manager) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if m.redis == nil || ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("marshal cache value: %w", err)
	}

	if err := m.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Delete removes the entry for key. Deleting an absent key succeeds.
func (m *Manager) Delete(ctx context.Context, key string) error {
	if m.redis == nil {
		return nil
	}

	if err := m.redis.Del(ctx, key).Err(); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}

	return nil
}
