package in_memory

import (
	"time"

	"github.com/veldwork/veld/pkg/tcache"
	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/cache"
)

// single-process store backed by pkg/tcache. meant for small
// deployments and tests; anything running more than one veld process
// should use memcached or redis instead, since each process would
// otherwise hold its own disjoint cache.
type VeldInMemoryCacheStore struct {
	config *veld.VeldConfig
	cache *tcache.TCache
}

func NewVeldInMemoryCacheStore(cfg *veld.VeldConfig) (*VeldInMemoryCacheStore, error) {
	return &VeldInMemoryCacheStore{
		config: cfg,
		cache: tcache.NewTCache(5 * time.Minute),
	}, nil
}

func (cs *VeldInMemoryCacheStore) IsCacheStoreUsable() (bool, error) {
	return true, nil
}

func (cs *VeldInMemoryCacheStore) Dispose() error {
	return nil
}

func (cs *VeldInMemoryCacheStore) Get(key string) (string, error) {
	v, ok := cs.cache.Get(key)
	if !ok { return "", cache.ErrCacheMiss }
	return v, nil
}

func (cs *VeldInMemoryCacheStore) GetMulti(keys []string, keyPrefix string) (map[string]string, error) {
	res := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok := cs.cache.Get(keyPrefix + k)
		if !ok { continue }
		res[k] = v
	}
	return res, nil
}

func (cs *VeldInMemoryCacheStore) Add(key string, value string, ttl time.Duration) error {
	cs.cache.Add(key, value, ttl)
	return nil
}

func (cs *VeldInMemoryCacheStore) Delete(key string) error {
	cs.cache.Delete(key)
	return nil
}
