package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8089", cfg.BaseURL)
	assert.Equal(t, 100*time.Millisecond, cfg.QuietPeriod)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoad_ExplicitURLWinsOverAddrAndPort(t *testing.T) {
	t.Setenv("OSINT_GRAPH_URL", "https://graph.example.com")
	t.Setenv("OSINT_GRAPH_ADDR", "10.0.0.1")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://graph.example.com", cfg.BaseURL)
}

func TestLoad_AddrAndPortAssembleURL(t *testing.T) {
	t.Setenv("OSINT_GRAPH_ADDR", "10.0.0.5")
	t.Setenv("OSINT_GRAPH_PORT", "9000")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000", cfg.BaseURL)
}

func TestLoad_QuietPeriodFromEnv(t *testing.T) {
	t.Setenv("OSINT_GRAPH_QUIET_PERIOD_MS", "250")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.QuietPeriod)
}

func TestValidate_RejectsOutOfRangeValues(t *testing.T) {
	cfg := &Config{
		BaseURL:          "http://localhost:8089",
		QuietPeriod:      time.Minute, // above max
		HistoryLimit:     10,
		Environment:      "development",
		MetricsNamespace: "osintgraph",
	}
	assert.Error(t, cfg.Validate())

	cfg.QuietPeriod = 100 * time.Millisecond
	cfg.HistoryLimit = 0
	assert.Error(t, cfg.Validate())

	cfg.HistoryLimit = 10
	cfg.Environment = "staging"
	assert.Error(t, cfg.Validate())
}
