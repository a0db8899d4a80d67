package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "USD", cfg.Account.Currency)
	assert.Equal(t, 10000.0, cfg.Account.StartingBalance)
	assert.Equal(t, "json", cfg.Store.Type)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
		errStr string
	}{
		{"missing currency", func(c *Config) { c.Account.Currency = "" }, "currency"},
		{"negative balance", func(c *Config) { c.Account.StartingBalance = -1 }, "starting_balance"},
		{"bad store type", func(c *Config) { c.Store.Type = "redis" }, "store.type"},
		{"json without dir", func(c *Config) { c.Store.Dir = "" }, "store.dir"},
		{"sqlite without path", func(c *Config) { c.Store.Type = "sqlite"; c.Store.DBPath = "" }, "db_path"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errStr)
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.yaml")

	cfg := Default()
	cfg.Account.StartingBalance = 25000
	cfg.Store.Type = "sqlite"
	cfg.Store.DBPath = "/tmp/journal.db"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestJSONFallback(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.json")

	cfg := Default()
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadInvalidConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("account:\n  currency: ''\n"), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
