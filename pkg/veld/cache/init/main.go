package init

import (
	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/cache"
	"github.com/veldwork/veld/pkg/veld/cache/in_memory"
	"github.com/veldwork/veld/pkg/veld/cache/memcached"
	"github.com/veldwork/veld/pkg/veld/cache/redis_like"
)

func InitializeCacheStore(cfg *veld.VeldConfig) (cache.VeldCacheStore, error) {
	switch cfg.Cache.Type {
	case "in_memory":
		return in_memory.NewVeldInMemoryCacheStore(cfg)
	case "redis": fallthrough
	case "keydb": fallthrough
	case "valkey":
		return redis_like.NewVeldRedisLikeCacheStore(cfg)
	case "memcached":
		return memcached.NewVeldMemcachedCacheStore(cfg)
	}
	return nil, cache.ErrCacheNotSupported
}
