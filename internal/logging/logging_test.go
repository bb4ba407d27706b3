package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "confsched.log")
	logger, closeFn, err := Init(path, slog.LevelInfo)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("bookmark toggled", "item_id", "s-1")
	require.NoError(t, closeFn())

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "bookmark toggled", rec["msg"])
	assert.Equal(t, "s-1", rec["item_id"])
}

func TestInit_EmptyPathDiscards(t *testing.T) {
	logger, closeFn, err := Init("", slog.LevelDebug)
	require.NoError(t, err)
	logger.Info("nowhere")
	assert.NoError(t, closeFn())
}

func TestTee_RespectsEachLevel(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	logger := slog.New(Tee(
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)).With("component", "test")

	logger.Info("info line")
	logger.Warn("warn line")

	assert.Contains(t, debugBuf.String(), "info line")
	assert.Contains(t, debugBuf.String(), "warn line")
	assert.NotContains(t, warnBuf.String(), "info line")
	assert.Contains(t, warnBuf.String(), "component=test")
}
