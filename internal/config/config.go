// Package config loads client configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/skepticlabs/skeptic-tui/internal/session"
)

// Config aggregates every setting the client honors.
type Config struct {
	// BaseURL selects the backend host.
	BaseURL string
	// DBPath is where the session context database lives.
	DBPath string
	// StallTimeout fails a stream that delivers no events for this long.
	StallTimeout time.Duration
	// Demo plays the canned conversation instead of contacting a backend.
	Demo bool
	// Debug enables file logging from the TUI process.
	Debug bool
}

// Load reads configuration from environment variables, applying defaults
// for anything unset.
func Load() (*Config, error) {
	stall, err := parseDurationEnv("SKEPTIC_STALL_TIMEOUT", 2*time.Minute)
	if err != nil {
		return nil, err
	}

	demo, err := parseBoolEnv("SKEPTIC_DEMO", false)
	if err != nil {
		return nil, err
	}

	debug, err := parseBoolEnv("SKEPTIC_DEBUG", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		BaseURL:      getEnvOrDefault("SKEPTIC_API_BASE_URL", "http://localhost:8000"),
		DBPath:       getEnvOrDefault("SKEPTIC_DB_PATH", session.DefaultDBPath()),
		StallTimeout: stall,
		Demo:         demo,
		Debug:        debug,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}
