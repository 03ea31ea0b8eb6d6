package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BRP_DB", "BRP_CONFIG", "BRP_AUTOSAVE_MS", "BRP_LOG_USE_CASES", "BRP_SEED_DEMO"} {
		t.Setenv(k, "")
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultAutoSaveMs, cfg.AutoSaveMs)
	assert.Equal(t, 250*time.Millisecond, cfg.AutoSaveDelay())
	assert.Equal(t, "brp.db", filepath.Base(cfg.DBPath))
	assert.False(t, cfg.LogUseCases)
	assert.False(t, cfg.SeedDemo)
}

func TestParse_Values(t *testing.T) {
	cfg, err := Parse([]byte("db_path: /tmp/x.db\nautosave_ms: 900\nlog_use_cases: true\nseed_demo: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, 900, cfg.AutoSaveMs)
	assert.True(t, cfg.LogUseCases)
	assert.True(t, cfg.SeedDemo)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("autosave_ms: [1"))
	assert.ErrorContains(t, err, "config: parse")

	_, err = Parse([]byte("autosave_ms: -5"))
	assert.ErrorContains(t, err, "autosave_ms must be between")

	_, err = Parse([]byte("autosave_ms: 600000"))
	assert.ErrorContains(t, err, "validation failed")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAutoSaveMs, cfg.AutoSaveMs)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: file.db\nautosave_ms: 100\n"), 0o600))

	t.Setenv("BRP_DB", "env.db")
	t.Setenv("BRP_AUTOSAVE_MS", "400")
	t.Setenv("BRP_LOG_USE_CASES", "true")
	t.Setenv("BRP_SEED_DEMO", "1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.DBPath)
	assert.Equal(t, 400, cfg.AutoSaveMs)
	assert.True(t, cfg.LogUseCases)
	assert.True(t, cfg.SeedDemo)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("autosave_ms: 700\n"), 0o600))
	t.Setenv("BRP_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 700, cfg.AutoSaveMs)
}

func TestLoad_InvalidEnvIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("BRP_AUTOSAVE_MS", "soon")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAutoSaveMs, cfg.AutoSaveMs)
}

func TestLoad_InvalidBoolEnvKeepsFileValue(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_use_cases: true\nseed_demo: true\n"), 0o600))

	t.Setenv("BRP_LOG_USE_CASES", "loud")
	t.Setenv("BRP_SEED_DEMO", "please")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.LogUseCases)
	assert.True(t, cfg.SeedDemo)
}
