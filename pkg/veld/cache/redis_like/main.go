package redis_like

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/cache"
)

// covers redis and things that speak its protocol (keydb, valkey).
type VeldRedisLikeCacheStore struct {
	config *veld.VeldConfig
	connection *redis.Client
}

func NewVeldRedisLikeCacheStore(cfg *veld.VeldConfig) (*VeldRedisLikeCacheStore, error) {
	c := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.Host,
		Username: cfg.Cache.UserName,
		Password: cfg.Cache.Password,
		DB: cfg.Cache.DatabaseNumber,
	})
	return &VeldRedisLikeCacheStore{
		config: cfg,
		connection: c,
	}, nil
}

func (cs *VeldRedisLikeCacheStore) properKey(key string) string {
	if len(cs.config.Cache.KeyPrefix) <= 0 { return key }
	return cs.config.Cache.KeyPrefix + ":" + key
}

func (cs *VeldRedisLikeCacheStore) IsCacheStoreUsable() (bool, error) {
	cmd := cs.connection.Ping(context.TODO())
	if cmd.Err() != nil { return false, cmd.Err() }
	return true, nil
}

func (cs *VeldRedisLikeCacheStore) Dispose() error {
	return cs.connection.Close()
}

func (cs *VeldRedisLikeCacheStore) Get(key string) (string, error) {
	cmd := cs.connection.Get(context.TODO(), cs.properKey(key))
	if cmd.Err() == redis.Nil { return "", cache.ErrCacheMiss }
	if cmd.Err() != nil { return "", cmd.Err() }
	return cmd.Val(), nil
}

func (cs *VeldRedisLikeCacheStore) GetMulti(keys []string, keyPrefix string) (map[string]string, error) {
	res := make(map[string]string, len(keys))
	if len(keys) <= 0 { return res, nil }
	fullKeys := make([]string, len(keys))
	for i, k := range keys {
		fullKeys[i] = cs.properKey(keyPrefix + k)
	}
	cmd := cs.connection.MGet(context.TODO(), fullKeys...)
	if cmd.Err() != nil { return make(map[string]string), cmd.Err() }
	// MGET keeps the order of the requested keys and yields nil for
	// the ones that are not there.
	for i, v := range cmd.Val() {
		if v == nil { continue }
		s, ok := v.(string)
		if !ok { continue }
		res[keys[i]] = s
	}
	return res, nil
}

func (cs *VeldRedisLikeCacheStore) Add(key string, value string, ttl time.Duration) error {
	if ttl < 0 { ttl = 0 }
	// SET NX; a false result means the key was already there, which
	// Add treats as success.
	cmd := cs.connection.SetNX(context.TODO(), cs.properKey(key), value, ttl)
	return cmd.Err()
}

func (cs *VeldRedisLikeCacheStore) Delete(key string) error {
	cmd := cs.connection.Del(context.TODO(), cs.properKey(key))
	return cmd.Err()
}
