package cache

import (
	"time"
)

// the cache store holds small rendered values (user links, nickname
// lookups) that are cheap to recompute but hot on list pages. every
// backend is a shared store from the point of view of the web node:
// multiple veld processes may point at the same memcached/redis
// instance, so all write methods have to be safe against concurrent
// writers on other nodes.
type VeldCacheStore interface {
	IsCacheStoreUsable() (bool, error)
	Dispose() error

	// Get returns the value stored under `key`. a missing key is
	// reported with ErrCacheMiss; any other error means the store
	// itself failed. callers that only care about hit-or-miss should
	// treat a failing store the same as a miss.
	Get(key string) (string, error)

	// GetMulti looks up `keyPrefix + key` for every key in `keys` and
	// returns a map keyed by the bare keys (without `keyPrefix`).
	// missing keys are simply absent from the result. a failing store
	// returns an empty map alongside the error.
	GetMulti(keys []string, keyPrefix string) (map[string]string, error)

	// Add stores `value` under `key` only when the key is not already
	// present. losing the race to another writer is not an error; the
	// value that got there first wins and stays. a non-positive ttl
	// means the backend default.
	Add(key string, value string, ttl time.Duration) error

	// Delete removes `key`. deleting a key that is not there is not
	// an error.
	Delete(key string) error
}
