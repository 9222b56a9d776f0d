package veld

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateAndLoadConfigFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "veld-config.json")
	assert.NoError(t, CreateConfigFile(p))
	// refuses to clobber an existing file.
	assert.Error(t, CreateConfigFile(p))

	cfg, err := LoadConfigFile(p)
	assert.NoError(t, err)
	assert.Equal(t, "Veld", cfg.SiteName)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "in_memory", cfg.Cache.Type)
	assert.Equal(t, "sqlite", cfg.Session.Type)
	assert.True(t, cfg.AllowRegistration)
	assert.Equal(t, "public", cfg.GlobalVisibility)
	assert.Equal(t, p, cfg.FilePath)

	// relative sqlite paths resolve against the config directory.
	dir := filepath.Dir(p)
	assert.Equal(t, filepath.Join(dir, "veld.db"), cfg.ProperDatabasePath())
	assert.Equal(t, filepath.Join(dir, "veld-session.db"), cfg.ProperSessionPath())
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestProperHTTPHostName(t *testing.T) {
	c := &VeldConfig{HttpHostName: "veld.example.com/"}
	assert.NoError(t, c.RecalculateProperPath())
	assert.Equal(t, "http://veld.example.com", c.ProperHTTPHostName())

	c = &VeldConfig{HttpHostName: "https://veld.example.com"}
	assert.NoError(t, c.RecalculateProperPath())
	assert.Equal(t, "https://veld.example.com", c.ProperHTTPHostName())

	c = &VeldConfig{}
	assert.NoError(t, c.RecalculateProperPath())
	assert.Equal(t, "", c.ProperHTTPHostName())
}

func TestAbsoluteSqlitePathsStay(t *testing.T) {
	c := &VeldConfig{FilePath: "/etc/veld/veld-config.json"}
	c.Database.Type = "sqlite"
	c.Database.Path = "/var/lib/veld/veld.db"
	c.Session.Type = "sqlite"
	c.Session.Path = "session.db"
	assert.NoError(t, c.RecalculateProperPath())
	assert.Equal(t, "/var/lib/veld/veld.db", c.ProperDatabasePath())
	assert.Equal(t, "/etc/veld/session.db", c.ProperSessionPath())
}

func TestSyncWritesBack(t *testing.T) {
	p := filepath.Join(t.TempDir(), "veld-config.json")
	assert.NoError(t, CreateConfigFile(p))
	cfg, err := LoadConfigFile(p)
	assert.NoError(t, err)
	cfg.SiteName = "Patchwork"
	assert.NoError(t, cfg.Sync())

	reloaded, err := LoadConfigFile(p)
	assert.NoError(t, err)
	assert.Equal(t, "Patchwork", reloaded.SiteName)
}
