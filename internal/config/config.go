package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	SaveDir      string `env:"SCOUT_SAVE_DIR" envDefault:".saves"`
	DBPath       string `env:"SCOUT_DB_PATH" envDefault:".saves/slots.db"`
	TuningPath   string `env:"SCOUT_TUNING_PATH"`
	LogPath      string `env:"SCOUT_LOG_PATH" envDefault:".saves/scout.log"`
	WeekLogDir   string `env:"SCOUT_WEEK_LOG_DIR" envDefault:".saves/weeks"`
	Slot         string `env:"SCOUT_SLOT" envDefault:"current"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	OTelEndpoint string `env:"SCOUT_OTEL_ENDPOINT"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
