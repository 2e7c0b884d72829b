// Package logging configures the process-wide slog logger, with optional
// file rotation.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/usestring/json2types/internal/config"
)

// Config holds logging configuration.
type Config struct {
	Level      string // debug, info, warn, error
	FilePath   string // empty = Stderr only
	MaxSizeMB  int    // size before rotation
	MaxBackups int    // rotated files to retain
	MaxAgeDays int    // days to retain rotated files
	Compress   bool   // gzip rotated files

	// Stderr receives logs when FilePath is empty. Default: os.Stderr
	Stderr io.Writer
}

// FromConfig extracts the logging settings of the application config.
func FromConfig(c *config.Config) Config {
	return Config{
		Level:      c.LogLevel,
		FilePath:   c.LogFile,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
		Compress:   c.LogCompress,
	}
}

// Setup installs a text logger as the slog default. Logs never go to stdout,
// which carries command output and the MCP stdio transport.
// The returned cleanup closes the log file, if any.
func Setup(cfg Config) (func() error, error) {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var writer io.Writer
	cleanup := func() error { return nil }

	switch {
	case cfg.FilePath != "":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return nil, err
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		writer = lj
		cleanup = lj.Close
	case cfg.Stderr != nil:
		writer = cfg.Stderr
	default:
		writer = os.Stderr
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(writer, opts)))
	return cleanup, nil
}

// ParseLevel maps a level name to a slog level; unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
