package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server  ServerConfig
	LLM     LLMConfig
	Anomaly AnomalyConfig
	Search  SearchConfig

	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	MaxLogLength int    `envconfig:"MAX_LOG_LENGTH" default:"10000"`
}

type ServerConfig struct {
	Host         string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port         string        `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"300s"`
}

type LLMConfig struct {
	// Endpoint is any OpenAI-compatible completions endpoint, e.g. Ollama's
	// http://localhost:11434/v1.
	Endpoint    string  `envconfig:"LLM_ENDPOINT" default:"http://localhost:11434/v1"`
	Model       string  `envconfig:"LLM_MODEL" default:"llama3.2"`
	APIKey      string  `envconfig:"LLM_API_KEY" default:""`
	Temperature float64 `envconfig:"LLM_TEMPERATURE" default:"0.7"`
}

type AnomalyConfig struct {
	URL       string        `envconfig:"ANOMALY_API_URL" default:"http://localhost:7000"`
	Threshold float64       `envconfig:"ANOMALY_THRESHOLD" default:"10.5"`
	Timeout   time.Duration `envconfig:"ANOMALY_TIMEOUT" default:"30s"`
}

type SearchConfig struct {
	// Provider selects the threat-intel backend: "duckduckgo" (no key
	// required) or "brave".
	Provider    string `envconfig:"SEARCH_PROVIDER" default:"duckduckgo"`
	BraveAPIKey string `envconfig:"BRAVE_API_KEY" default:""`
}

// Load reads configuration from the environment, after overlaying a .env
// file when one is present in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	slog.Info("configuration loaded successfully")
	return &cfg, nil
}

// SlogLevel maps the configured log level onto slog's scale. Unrecognized
// values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug", "DEBUG":
		return slog.LevelDebug
	case "warn", "warning", "WARN", "WARNING":
		return slog.LevelWarn
	case "error", "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
