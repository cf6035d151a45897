package cache

import "time"

// Cache defines the interface for an expiring in-memory store
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V, ttl time.Duration)
	Delete(key string)
	Clear()
	Len() int
}

// DefaultTTL tells Set to use the cache's default expiration
const DefaultTTL time.Duration = 0
