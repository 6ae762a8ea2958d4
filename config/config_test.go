package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, ":3000", cfg.Addr())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("GERMINATION_PORT", "8088")
	t.Setenv("GERMINATION_DB_PATH", "/tmp/seeds.db")
	t.Setenv("GERMINATION_AUTO_MIGRATE", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8088, cfg.Port)
	assert.Equal(t, "/tmp/seeds.db", cfg.DBPath)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, "dev", cfg.Environment)
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "germination.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 4000\nenvironment: prod\nlog_level: warn\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("GERMINATION_ENVIRONMENT", "staging")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("GERMINATION_PORT", "70000")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("GERMINATION_PORT", "3000")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	assert.Error(t, err)
}
