package redis_like

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veldwork/veld/pkg/veld"
)

func newTestStore(t *testing.T) (*VeldRedisLikeSessionStore, *miniredis.Miniredis) {
	t.Helper()
	m := miniredis.RunT(t)
	cfg := &veld.VeldConfig{}
	cfg.Session.Type = "redis"
	cfg.Session.Host = m.Addr()
	cfg.Session.TablePrefix = "veld"
	ss, err := NewVeldRedisLikeSessionStore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Dispose() })
	require.NoError(t, ss.Install())
	ok, err := ss.IsSessionStoreUsable()
	require.NoError(t, err)
	require.True(t, ok)
	return ss, m
}

func TestSessionRoundtrip(t *testing.T) {
	ss, m := newTestStore(t)

	ok, err := ss.VerifySession("alice@example.com", "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ss.RegisterSession("alice@example.com", "s1"))
	require.NoError(t, ss.RegisterSession("alice@example.com", "s2"))

	// all sessions of one account live under a single prefixed hash.
	assert.True(t, m.Exists("veld:alice@example.com:session"))

	ok, err = ss.VerifySession("alice@example.com", "s1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = ss.VerifySession("bob@example.com", "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := ss.RetrieveSession("alice@example.com")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := ss.RetrieveSessionByKey("alice@example.com", "s2")
	require.NoError(t, err)
	assert.Equal(t, "s2", one.Id)
	assert.Greater(t, one.Timestamp, int64(0))
}

func TestSessionRevoke(t *testing.T) {
	ss, _ := newTestStore(t)
	require.NoError(t, ss.RegisterSession("alice@example.com", "s1"))
	require.NoError(t, ss.RegisterSession("alice@example.com", "s2"))

	require.NoError(t, ss.RevokeSession("alice@example.com", "s1"))
	ok, err := ss.VerifySession("alice@example.com", "s1")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = ss.VerifySession("alice@example.com", "s2")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NoError(t, ss.RevokeSession("alice@example.com", "gone"))
}
