// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/usestring/json2types/pkg/infer"
	"github.com/usestring/json2types/pkg/optimize"
)

// Config holds all configuration for the CLI and the MCP server.
type Config struct {
	MaxDepth            int // MAX_DEPTH, default infer.DefaultMaxDepth
	LoadWorkers         int // LOAD_WORKERS, default 8
	ResultCacheMaxItems int // RESULT_CACHE_MAX_ITEMS, default 128

	// Optimizer defaults; CLI flags override them per run.
	MergeSimilar bool // MERGE_SIMILAR, default false
	MergeNames   bool // MERGE_NAMES, default true
	MergeUnions  bool // MERGE_UNIONS, default false

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is loaded first when
// present; variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	defaults := optimize.DefaultConfig()
	return &Config{
		MaxDepth:            getEnvInt("MAX_DEPTH", infer.DefaultMaxDepth),
		LoadWorkers:         getEnvInt("LOAD_WORKERS", 8),
		ResultCacheMaxItems: getEnvInt("RESULT_CACHE_MAX_ITEMS", 128),

		MergeSimilar: getEnvBool("MERGE_SIMILAR", defaults.MergeSimilar),
		MergeNames:   getEnvBool("MERGE_NAMES", defaults.MergeByName),
		MergeUnions:  getEnvBool("MERGE_UNIONS", defaults.MergeUnions),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// Optimize returns the optimizer configuration selected by the environment.
func (c *Config) Optimize() optimize.Config {
	return optimize.Config{
		MergeSimilar: c.MergeSimilar,
		MergeByName:  c.MergeNames,
		MergeUnions:  c.MergeUnions,
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
