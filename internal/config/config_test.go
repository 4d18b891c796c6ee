package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:11434/v1", cfg.LLM.Endpoint)
	assert.Equal(t, "llama3.2", cfg.LLM.Model)
	assert.Equal(t, "http://localhost:7000", cfg.Anomaly.URL)
	assert.Equal(t, 10.5, cfg.Anomaly.Threshold)
	assert.Equal(t, 30*time.Second, cfg.Anomaly.Timeout)
	assert.Equal(t, "duckduckgo", cfg.Search.Provider)
	assert.Equal(t, 10000, cfg.MaxLogLength)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LLM_MODEL", "mistral")
	t.Setenv("SEARCH_PROVIDER", "brave")
	t.Setenv("BRAVE_API_KEY", "secret")
	t.Setenv("MAX_LOG_LENGTH", "2048")
	t.Setenv("ANOMALY_THRESHOLD", "7.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mistral", cfg.LLM.Model)
	assert.Equal(t, "brave", cfg.Search.Provider)
	assert.Equal(t, "secret", cfg.Search.BraveAPIKey)
	assert.Equal(t, 2048, cfg.MaxLogLength)
	assert.Equal(t, 7.5, cfg.Anomaly.Threshold)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.in}
		assert.Equal(t, tt.want, cfg.SlogLevel(), "level %q", tt.in)
	}
}
