// Package memcache is an in-process implementation of relgraph.Cache, for
// callers who want Run-result memoization without standing up an external
// cache. The engine itself never touches this. Values round-trip through
// msgpack so callers get the same encode/decode boundary a real network
// cache would impose.
package memcache

import (
	"context"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/relgraph"
)

type entry struct {
	payload []byte
	expires time.Time // zero means no expiry
}

// Cache is a mutex-guarded map keyed by relgraph.CacheKey.String(), with
// lazy expiry checked on Get.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

var _ relgraph.Cache = (*Cache)(nil)

// New returns an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// Get returns nil, nil for a missing or expired key.
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !e.expires.IsZero() && time.Now().After(e.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	var value []byte
	if err := msgpack.Unmarshal(e.payload, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores value, msgpack-round-tripped so corrupt or non-serializable
// payloads fail here rather than silently at read time.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	packed, err := msgpack.Marshal(value)
	if err != nil {
		return err
	}
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = entry{payload: packed, expires: exp}
	c.mu.Unlock()
	return nil
}

// Delete removes key, if present.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Clear empties the cache.
func (c *Cache) Clear(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	return nil
}
