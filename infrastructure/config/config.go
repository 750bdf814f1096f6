// Package config loads engine configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all client configuration.
type Config struct {
	// Remote store endpoint. BaseURL wins when set; otherwise it is
	// assembled from Addr and Port.
	BaseURL string `validate:"required,url"`

	// QuietPeriod is how long a debounced write waits for further
	// mutations before dispatching.
	QuietPeriod time.Duration `validate:"min=1ms,max=5s"`

	// HistoryLimit bounds the undo snapshot stack.
	HistoryLimit int `validate:"min=1,max=100"`

	// Logging
	Environment string `validate:"oneof=development production"`
	LogLevel    string

	MetricsNamespace string `validate:"required"`

	// Tracing
	TracingEnabled  bool
	TracingEndpoint string
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		BaseURL:          getEnv("OSINT_GRAPH_URL", ""),
		QuietPeriod:      getEnvDurationMS("OSINT_GRAPH_QUIET_PERIOD_MS", 100*time.Millisecond),
		HistoryLimit:     getEnvInt("OSINT_GRAPH_HISTORY_LIMIT", 10),
		Environment:      getEnv("ENVIRONMENT", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "osintgraph"),
		TracingEnabled:   getEnvBool("OSINT_GRAPH_TRACING", false),
		TracingEndpoint:  getEnv("OSINT_GRAPH_TRACING_ENDPOINT", "localhost:4317"),
	}

	if cfg.BaseURL == "" {
		addr := getEnv("OSINT_GRAPH_ADDR", "127.0.0.1")
		port := getEnv("OSINT_GRAPH_PORT", "8089")
		cfg.BaseURL = fmt.Sprintf("http://%s:%s", addr, port)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDurationMS(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Millisecond
		}
	}
	return fallback
}
