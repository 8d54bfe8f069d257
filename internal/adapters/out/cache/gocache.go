// Package cache provides the TTL cache adapter and the cache-aside decorator
// for document status reads. The cache is an accelerator only: if it is
// empty or gone, every operation falls back to the durable store with
// identical results.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// GoCache implements ports.Cache over an in-process go-cache instance.
type GoCache struct {
	cache *gocache.Cache
}

// NewGoCache creates an in-process TTL cache. defaultTTL applies when a
// caller passes a zero TTL to Set; cleanupInterval controls how often
// expired entries are swept.
func NewGoCache(defaultTTL, cleanupInterval time.Duration) *GoCache {
	return &GoCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the cached value and whether it was present.
func (c *GoCache) Get(key string) (any, bool) {
	return c.cache.Get(key)
}

// Set stores a value under the key with the given TTL.
func (c *GoCache) Set(key string, value any, ttl time.Duration) {
	c.cache.Set(key, value, ttl)
}

// Delete removes the key. Deleting an absent key is a no-op.
func (c *GoCache) Delete(key string) {
	c.cache.Delete(key)
}
