package in_memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/veldwork/veld/pkg/veld"
	"github.com/veldwork/veld/pkg/veld/cache"
)

func newTestStore(t *testing.T) *VeldInMemoryCacheStore {
	t.Helper()
	cs, err := NewVeldInMemoryCacheStore(&veld.VeldConfig{})
	assert.NoError(t, err)
	return cs
}

func TestGetMissReturnsSentinel(t *testing.T) {
	cs := newTestStore(t)
	_, err := cs.Get("missing")
	assert.Equal(t, cache.ErrCacheMiss, err)
}

func TestAddIsCreateIfAbsent(t *testing.T) {
	cs := newTestStore(t)
	assert.NoError(t, cs.Add("k", "first", time.Minute))
	assert.NoError(t, cs.Add("k", "second", time.Minute))
	v, err := cs.Get("k")
	assert.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestGetMultiStripsPrefix(t *testing.T) {
	cs := newTestStore(t)
	assert.NoError(t, cs.Add("p:a", "va", time.Minute))
	assert.NoError(t, cs.Add("p:c", "vc", time.Minute))
	res, err := cs.GetMulti([]string{"a", "b", "c"}, "p:")
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "va", "c": "vc"}, res)
}

func TestDeleteIsIdempotent(t *testing.T) {
	cs := newTestStore(t)
	assert.NoError(t, cs.Add("k", "v", time.Minute))
	assert.NoError(t, cs.Delete("k"))
	_, err := cs.Get("k")
	assert.Equal(t, cache.ErrCacheMiss, err)
	assert.NoError(t, cs.Delete("k"))
}

func TestEntriesExpire(t *testing.T) {
	cs := newTestStore(t)
	assert.NoError(t, cs.Add("k", "v", 50*time.Millisecond))
	time.Sleep(300 * time.Millisecond)
	_, err := cs.Get("k")
	assert.Equal(t, cache.ErrCacheMiss, err)
}

func TestUsableAndDispose(t *testing.T) {
	cs := newTestStore(t)
	ok, err := cs.IsCacheStoreUsable()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, cs.Dispose())
}
