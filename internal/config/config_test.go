package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "confsched.db", filepath.Base(cfg.DBPath))
	assert.False(t, cfg.HideTopBar)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"db_path: /tmp/a.db\nlog_level: debug\nhide_top_bar: true\n"), 0o644))
	t.Setenv("CONFSCHED_DB_PATH", "/tmp/from-env.db")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath, "env overrides file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.HideTopBar)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CONFSCHED_METRICS_ADDR=:9464\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("CONFSCHED_METRICS_ADDR") })

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, ":9464", cfg.MetricsAddr)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	ok := Config{DBPath: "x.db", LogLevel: "warn"}
	assert.NoError(t, ok.Validate())

	bad := Config{LogLevel: "loud", RefreshSchedule: "sometimes"}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db_path")
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "refresh_schedule requires schedule_file")
	assert.Contains(t, err.Error(), "invalid refresh schedule")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}
