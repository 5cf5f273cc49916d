package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Env holds launch settings that may come from the environment or a .env
// file. Command-line flags take precedence over these.
type Env struct {
	ConfigPath string
	Seed       int64
	OutputDir  string
}

// LoadEnv reads an optional .env file, then the RING_* variables.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	return Env{
		ConfigPath: getEnv("RING_CONFIG", "config.yaml"),
		Seed:       getEnvInt64("RING_SEED", 0),
		OutputDir:  getEnv("RING_OUTPUT_DIR", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
		slog.Warn("ignoring malformed integer", "key", key, "value", value)
	}
	return defaultValue
}
