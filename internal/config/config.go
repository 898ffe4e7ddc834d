package config

import (
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	API APIConfig
}

// APIConfig is the only externally configurable surface: one backend origin,
// fixed at process start and read-only afterwards.
type APIConfig struct {
	BaseURL string        `envconfig:"SCHOLAR_API_URL" default:"http://localhost:5000"`
	Timeout time.Duration `envconfig:"SCHOLAR_API_TIMEOUT" default:"60s"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	slog.Debug("configuration loaded", "api_url", cfg.API.BaseURL)
	return &cfg, nil
}
