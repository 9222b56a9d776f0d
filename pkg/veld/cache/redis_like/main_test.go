package redis_like

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/cache"
)

func newTestStore(t *testing.T) (*VeldRedisLikeCacheStore, *miniredis.Miniredis) {
	t.Helper()
	m := miniredis.RunT(t)
	cfg := &veld.VeldConfig{}
	cfg.Cache.Type = "redis"
	cfg.Cache.Host = m.Addr()
	cfg.Cache.KeyPrefix = "veld"
	cs, err := NewVeldRedisLikeCacheStore(cfg)
	assert.NoError(t, err)
	t.Cleanup(func() { cs.Dispose() })
	return cs, m
}

func TestStoreIsUsable(t *testing.T) {
	cs, _ := newTestStore(t)
	ok, err := cs.IsCacheStoreUsable()
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestGetMissReturnsSentinel(t *testing.T) {
	cs, _ := newTestStore(t)
	_, err := cs.Get("missing")
	assert.Equal(t, cache.ErrCacheMiss, err)
}

func TestAddAndGetCarryThePrefix(t *testing.T) {
	cs, m := newTestStore(t)
	assert.NoError(t, cs.Add("k", "v", time.Minute))
	v, err := cs.Get("k")
	assert.NoError(t, err)
	assert.Equal(t, "v", v)
	// the configured prefix is what reaches the server.
	assert.True(t, m.Exists("veld:k"))
}

func TestAddIsCreateIfAbsent(t *testing.T) {
	cs, _ := newTestStore(t)
	assert.NoError(t, cs.Add("k", "first", time.Minute))
	assert.NoError(t, cs.Add("k", "second", time.Minute))
	v, err := cs.Get("k")
	assert.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestGetMulti(t *testing.T) {
	cs, _ := newTestStore(t)
	assert.NoError(t, cs.Add("p:a", "va", time.Minute))
	assert.NoError(t, cs.Add("p:c", "vc", time.Minute))
	res, err := cs.GetMulti([]string{"a", "b", "c"}, "p:")
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "va", "c": "vc"}, res)

	res, err = cs.GetMulti([]string{}, "p:")
	assert.NoError(t, err)
	assert.Empty(t, res)
}

func TestDeleteIsIdempotent(t *testing.T) {
	cs, _ := newTestStore(t)
	assert.NoError(t, cs.Add("k", "v", time.Minute))
	assert.NoError(t, cs.Delete("k"))
	_, err := cs.Get("k")
	assert.Equal(t, cache.ErrCacheMiss, err)
	assert.NoError(t, cs.Delete("k"))
}

func TestEntriesExpire(t *testing.T) {
	cs, m := newTestStore(t)
	assert.NoError(t, cs.Add("k", "v", time.Minute))
	m.FastForward(2 * time.Minute)
	_, err := cs.Get("k")
	assert.Equal(t, cache.ErrCacheMiss, err)
}

func TestProperKey(t *testing.T) {
	cs, _ := newTestStore(t)
	assert.Equal(t, "veld:k", cs.properKey("k"))

	bare := &VeldRedisLikeCacheStore{config: &veld.VeldConfig{}}
	assert.Equal(t, "k", bare.properKey("k"))
}
