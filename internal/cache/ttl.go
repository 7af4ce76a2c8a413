// Package cache provides the short-TTL caches used by the provider
// adapters and the name resolvers, plus an optional Redis snapshot
// writer for aggregated results.
package cache

import (
	"sync"
	"time"
)

// entry is a stored value with its expiry instant.
type entry struct {
	value     interface{}
	expiresAt time.Time
}

// TTLCache is a mutex-guarded in-memory cache. Concurrent readers and
// writers are safe; last writer wins on the same key, which is
// acceptable because values are idempotent lookups. Stale reads return
// fresh=false rather than an error.
type TTLCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewTTLCache creates an empty cache.
func NewTTLCache() *TTLCache {
	return &TTLCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the stored value and whether it is still fresh. A missing
// key returns (nil, false).
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		return e.value, false
	}
	return e.value, true
}

// Put stores a value for ttl from now.
func (c *TTLCache) Put(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

// Delete removes a key. Used by tests and by callers invalidating a
// known-bad resolution.
func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len reports the number of stored entries, fresh or stale.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
