package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestSetup_WritesToStderrWriter(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	cleanup, err := Setup(Config{Level: "warn", Stderr: &buf})
	require.NoError(t, err)
	defer cleanup()

	slog.Info("hidden")
	slog.Warn("skipping schema", "name", "Bar")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "skipping schema")
	assert.Contains(t, out, "name=Bar")
}

func TestSetup_File(t *testing.T) {
	restoreDefault(t)
	path := filepath.Join(t.TempDir(), "logs", "json2types.log")

	cleanup, err := Setup(Config{Level: "debug", FilePath: path, MaxSizeMB: 1})
	require.NoError(t, err)
	slog.Debug("optimizer pass", "pass", "merge_by_name")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pass=merge_by_name")
}
