package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veldwork/veld/pkg/veld"
)

func newTestStore(t *testing.T) *VeldSqliteSessionStore {
	t.Helper()
	cfg := &veld.VeldConfig{FilePath: filepath.Join(t.TempDir(), "veld-config.json")}
	cfg.Session.Type = "sqlite"
	cfg.Session.Path = "veld-session.db"
	cfg.Session.TablePrefix = "veld"
	require.NoError(t, cfg.RecalculateProperPath())
	ss, err := NewVeldSqliteSessionStore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Dispose() })

	ok, err := ss.IsSessionStoreUsable()
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, ss.Install())
	ok, err = ss.IsSessionStoreUsable()
	require.NoError(t, err)
	require.True(t, ok)
	return ss
}

func TestSessionRoundtrip(t *testing.T) {
	ss := newTestStore(t)

	ok, err := ss.VerifySession("alice@example.com", "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ss.RegisterSession("alice@example.com", "s1"))
	require.NoError(t, ss.RegisterSession("alice@example.com", "s2"))
	require.NoError(t, ss.RegisterSession("bob@example.com", "s3"))

	ok, err = ss.VerifySession("alice@example.com", "s1")
	require.NoError(t, err)
	assert.True(t, ok)
	// session ids are only good for the account they were minted for.
	ok, err = ss.VerifySession("bob@example.com", "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := ss.RetrieveSession("alice@example.com")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := ss.RetrieveSessionByKey("alice@example.com", "s1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", one.Email)
	assert.Equal(t, "s1", one.Id)
	assert.Greater(t, one.Timestamp, int64(0))
}

func TestSessionRevoke(t *testing.T) {
	ss := newTestStore(t)
	require.NoError(t, ss.RegisterSession("alice@example.com", "s1"))
	require.NoError(t, ss.RegisterSession("alice@example.com", "s2"))

	require.NoError(t, ss.RevokeSession("alice@example.com", "s1"))
	ok, err := ss.VerifySession("alice@example.com", "s1")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = ss.VerifySession("alice@example.com", "s2")
	require.NoError(t, err)
	assert.True(t, ok)

	// revoking a session that does not exist is not an error.
	assert.NoError(t, ss.RevokeSession("alice@example.com", "never-there"))
}
