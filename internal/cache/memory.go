package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

var _ Cache[struct{}] = (*MemoryCache[struct{}])(nil)

// MemoryCache implements expiring in-memory caching on top of go-cache
type MemoryCache[V any] struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache. A non-positive defaultTTL
// disables expiration.
func NewMemoryCache[V any](defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache[V] {
	if defaultTTL <= 0 {
		defaultTTL = gocache.NoExpiration
	}
	return &MemoryCache[V]{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache[V]) Get(key string) (V, bool) {
	if val, found := c.cache.Get(key); found {
		if v, ok := val.(V); ok {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// Set stores a value in the cache with the given TTL (DefaultTTL for the
// cache default)
func (c *MemoryCache[V]) Set(key string, value V, ttl time.Duration) {
	c.cache.Set(key, value, ttl)
}

// Add stores a value only if the key is absent or expired
func (c *MemoryCache[V]) Add(key string, value V, ttl time.Duration) bool {
	return c.cache.Add(key, value, ttl) == nil
}

// Touch re-arms the default expiration of an existing key. A key deleted
// concurrently stays deleted.
func (c *MemoryCache[V]) Touch(key string) bool {
	v, ok := c.Get(key)
	if !ok {
		return false
	}
	return c.cache.Replace(key, v, gocache.DefaultExpiration) == nil
}

// Delete removes a value from the cache
func (c *MemoryCache[V]) Delete(key string) {
	c.cache.Delete(key)
}

// Clear removes all values from the cache
func (c *MemoryCache[V]) Clear() {
	c.cache.Flush()
}

// Len returns the number of items, including expired ones not yet cleaned up
func (c *MemoryCache[V]) Len() int {
	return c.cache.ItemCount()
}

// OnEvicted registers a callback for expired or deleted keys
func (c *MemoryCache[V]) OnEvicted(fn func(key string, value V)) {
	c.cache.OnEvicted(func(key string, val interface{}) {
		if v, ok := val.(V); ok {
			fn(key, v)
		}
	})
}
