// Package config loads the engine process's environment-derived
// configuration: logging, metrics, and broker reconnect bounds. Model
// configuration (brokers/entities/automations) is a separate concern
// loaded from a YAML document by domain/model.Load.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/smauto-dev/engine/infrastructure/resilience"
)

// Config holds the engine process's environment-derived settings.
type Config struct {
	LogLevel  string
	LogFormat string
	LogOutput string

	MetricsEnabled bool
	MetricsAddr    string

	BrokerMaxAttempts  int
	BrokerInitialDelay time.Duration
	BrokerMaxDelay     time.Duration
}

// Load reads an optional .env file (missing is fine; a malformed one is
// not) and builds a Config from environment variables, applying defaults
// for anything unset.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	return &Config{
		LogLevel:  getEnv("SMAUTO_LOG_LEVEL", "info"),
		LogFormat: getEnv("SMAUTO_LOG_FORMAT", "text"),
		LogOutput: getEnv("SMAUTO_LOG_OUTPUT", "stdout"),

		MetricsEnabled: getEnvBool("SMAUTO_METRICS_ENABLED", true),
		MetricsAddr:    getEnv("SMAUTO_METRICS_ADDR", ":9090"),

		BrokerMaxAttempts:  getEnvInt("SMAUTO_BROKER_MAX_ATTEMPTS", 5),
		BrokerInitialDelay: getEnvDuration("SMAUTO_BROKER_INITIAL_DELAY", 200*time.Millisecond),
		BrokerMaxDelay:     getEnvDuration("SMAUTO_BROKER_MAX_DELAY", 5*time.Second),
	}, nil
}

// BrokerRetryConfig builds the broker connection retry budget from the
// configured bounds, inheriting resilience's default multiplier and jitter.
func (c *Config) BrokerRetryConfig() resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.MaxAttempts = c.BrokerMaxAttempts
	cfg.InitialDelay = c.BrokerInitialDelay
	cfg.MaxDelay = c.BrokerMaxDelay
	return cfg
}

func getEnv(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	lower := strings.ToLower(v)
	return lower == "true" || lower == "1" || lower == "yes" || lower == "y"
}

func getEnvInt(key string, defaultValue int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue
	}
	return parsed
}
