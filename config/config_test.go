package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/holerite/config"
)

// unset clears key for the duration of the test and restores it afterwards.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func allKeys() []string {
	return []string{config.EnvPort, config.EnvDB, config.EnvCORSOrigins, config.EnvLogLevel}
}

func TestLoad_Defaults(t *testing.T) {
	unset(t, allKeys()...)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "holerite.db", cfg.DBPath)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Len(t, cfg.CORSOrigins, 2)
}

func TestLoad_Environment(t *testing.T) {
	unset(t, allKeys()...)
	t.Setenv(config.EnvPort, "3000")
	t.Setenv(config.EnvDB, ":memory:")
	t.Setenv(config.EnvCORSOrigins, "https://a.example, https://b.example,")
	t.Setenv(config.EnvLogLevel, "DEBUG")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_EnvFile(t *testing.T) {
	unset(t, allKeys()...)
	t.Setenv(config.EnvPort, "4000")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HOLERITE_PORT=9999\nHOLERITE_DB=./data/h.db\n"), 0o600))

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Port, "environment wins over the file")
	assert.Equal(t, "./data/h.db", cfg.DBPath)
}

func TestLoad_Invalid(t *testing.T) {
	unset(t, allKeys()...)
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Setenv(config.EnvPort, "eighty")
	_, err := config.Load(missing)
	assert.Error(t, err)

	t.Setenv(config.EnvPort, "70000")
	_, err = config.Load(missing)
	assert.Error(t, err)

	t.Setenv(config.EnvPort, "8080")
	t.Setenv(config.EnvLogLevel, "loud")
	_, err = config.Load(missing)
	assert.Error(t, err)
}
