package memcached

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/cache"
)

type VeldMemcachedCacheStore struct {
	config *veld.VeldConfig
	connection *memcache.Client
}

func NewVeldMemcachedCacheStore(cfg *veld.VeldConfig) (*VeldMemcachedCacheStore, error) {
	c := memcache.New(cfg.Cache.Host)
	return &VeldMemcachedCacheStore{
		config: cfg,
		connection: c,
	}, nil
}

// the configured key prefix namespaces every key so that multiple
// deployments can share one memcached instance.
func (cs *VeldMemcachedCacheStore) properKey(key string) string {
	if len(cs.config.Cache.KeyPrefix) <= 0 { return key }
	return cs.config.Cache.KeyPrefix + ":" + key
}

func (cs *VeldMemcachedCacheStore) IsCacheStoreUsable() (bool, error) {
	err := cs.connection.Ping()
	if err != nil { return false, err }
	return true, nil
}

func (cs *VeldMemcachedCacheStore) Dispose() error {
	return nil
}

func (cs *VeldMemcachedCacheStore) Get(key string) (string, error) {
	item, err := cs.connection.Get(cs.properKey(key))
	if err == memcache.ErrCacheMiss { return "", cache.ErrCacheMiss }
	if err != nil { return "", err }
	return string(item.Value), nil
}

func (cs *VeldMemcachedCacheStore) GetMulti(keys []string, keyPrefix string) (map[string]string, error) {
	res := make(map[string]string, len(keys))
	if len(keys) <= 0 { return res, nil }
	fullKeys := make([]string, len(keys))
	for i, k := range keys {
		fullKeys[i] = cs.properKey(keyPrefix + k)
	}
	m, err := cs.connection.GetMulti(fullKeys)
	if err != nil { return make(map[string]string), err }
	for i, k := range keys {
		item, ok := m[fullKeys[i]]
		if !ok { continue }
		res[k] = string(item.Value)
	}
	return res, nil
}

func (cs *VeldMemcachedCacheStore) Add(key string, value string, ttl time.Duration) error {
	expiration := int32(0)
	if ttl > 0 { expiration = int32(ttl / time.Second) }
	err := cs.connection.Add(&memcache.Item{
		Key: cs.properKey(key),
		Value: []byte(value),
		Flags: 0,
		Expiration: expiration,
	})
	// ErrNotStored means someone else got there first, which is the
	// outcome Add promises to tolerate.
	if err == memcache.ErrNotStored { return nil }
	return err
}

func (cs *VeldMemcachedCacheStore) Delete(key string) error {
	err := cs.connection.Delete(cs.properKey(key))
	if err == memcache.ErrCacheMiss { return nil }
	return err
}
