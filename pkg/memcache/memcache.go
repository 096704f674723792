// Package memcache provides a session-scoped in-memory TTL cache for
// memoizing paginated discovery queries.
//
// The cache is deliberately unbounded: entries live until their TTL expires
// or they are invalidated explicitly. Expired entries are removed lazily on
// read; there is no background sweeper.
package memcache

import (
	"fmt"
	"net/url"
	"sync"
	"time"
)

// DefaultTTL is the entry lifetime used when callers don't specify one.
const DefaultTTL = 60 * time.Second

// Store is the cache service contract. It is injected into whatever
// composition layer owns discovery state, so the in-memory implementation
// can be swapped for an indexed one if entry counts ever grow.
type Store interface {
	// Get returns the cached value for key, or false if absent or expired.
	Get(key string) (any, bool)

	// Set stores value under key with the given TTL, overwriting
	// unconditionally. A non-positive ttl falls back to DefaultTTL.
	Set(key string, value any, ttl time.Duration)

	// Delete removes the entry for key. Missing keys are not an error.
	Delete(key string)

	// Clear drops all entries.
	Clear()

	// Len returns the number of entries currently held, expired or not.
	Len() int

	// InvalidateUser removes every entry whose cached collection contains
	// a user with the given id. Returns the number of entries dropped.
	InvalidateUser(userID int64) int
}

type entry struct {
	value     any
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New returns an empty in-memory Store.
func New() Store {
	return &memoryStore{
		entries: make(map[string]entry),
	}
}

func (s *memoryStore) Get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		// Lazy expiry: drop on read.
		s.mu.Lock()
		// Re-check under the write lock in case the entry was replaced.
		if cur, ok := s.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *memoryStore) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s.mu.Lock()
	s.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	s.mu.Unlock()
}

func (s *memoryStore) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *memoryStore) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

func (s *memoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// BuildUsersKey produces the canonical cache key for a paginated users query.
//
// Example: users?page=0&size=10&sort=recipes&q=term
func BuildUsersKey(page, size int, sort, search string) string {
	key := fmt.Sprintf("users?page=%d&size=%d&sort=%s", page, size, sort)
	if search != "" {
		key += "&q=" + url.QueryEscape(search)
	}
	return key
}
