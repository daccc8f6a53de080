// Package config loads server configuration from the environment and an
// optional .env file. Command-line flags in cmd/server override these values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables.
const (
	EnvPort        = "HOLERITE_PORT"
	EnvDB          = "HOLERITE_DB"
	EnvCORSOrigins = "HOLERITE_CORS_ORIGINS"
	EnvLogLevel    = "HOLERITE_LOG_LEVEL"
)

type Config struct {
	Port        int
	DBPath      string
	CORSOrigins []string
	LogLevel    slog.Level
}

// Load reads the given .env files (default ".env") into the environment, then
// builds the Config. Missing .env files are not an error; variables already
// set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	port, err := strconv.Atoi(getEnv(EnvPort, "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvPort, err)
	}

	level, err := ParseLevel(getEnv(EnvLogLevel, "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvLogLevel, err)
	}

	config := &Config{
		Port:        port,
		DBPath:      getEnv(EnvDB, "holerite.db"),
		CORSOrigins: getEnvSlice(EnvCORSOrigins, []string{"http://localhost:5173", "http://localhost:8080"}),
		LogLevel:    level,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("%s is required", EnvDB)
	}
	return nil
}

// ParseLevel accepts debug, info, warn and error (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
