package ports

import "time"

// Cache is a best-effort TTL key-value store used for cache-aside reads.
// Absence of the cache (cold start, eviction, outage) must never change
// correctness, only latency: every miss falls through to the durable store.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(key string) (any, bool)

	// Set stores a value under the key with the given TTL.
	Set(key string, value any, ttl time.Duration)

	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(key string)
}
