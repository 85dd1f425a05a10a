package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads .env from the working directory if present. Variables that are
// already set win over the file.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// DataDir is BOARD_DATA_DIR, or "." when unset.
func DataDir() string {
	if d := strings.TrimSpace(os.Getenv("BOARD_DATA_DIR")); d != "" {
		return d
	}
	return "."
}

// ApplyEnv overrides file values with BOARD_* environment variables.
func ApplyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("BOARD_PORT")); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = p
		}
	}
	if v := strings.TrimSpace(os.Getenv("BOARD_FEED_URL")); v != "" {
		cfg.Feed.URL = v
	}
	if v := strings.TrimSpace(os.Getenv("BOARD_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
}
