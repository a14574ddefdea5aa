// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	ListModePaginate = "paginate"
	ListModeSingle   = "single"
)

// Config is read once at startup and passed down; nothing re-reads the
// environment per request.
type Config struct {
	Port               string   `env:"PORT" envDefault:"3000" validate:"required,numeric"`
	LogLevel           string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AMQPURL            string   `env:"AMQP_URL" validate:"omitempty,url"`
	EventsTopic        string   `env:"EVENTS_TOPIC" envDefault:"client_events" validate:"required"`

	Jotform JotformConfig
}

// JotformConfig holds the upstream settings. APIKey and FormID are allowed to
// be empty here: each route checks them itself and answers 500.
type JotformConfig struct {
	APIKey   string        `env:"JOTFORM_API_KEY"`
	FormID   string        `env:"JOTFORM_FORM_ID"`
	BaseURL  string        `env:"JOTFORM_BASE_URL" envDefault:"https://api.jotform.com" validate:"required,url"`
	ListMode string        `env:"JOTFORM_LIST_MODE" envDefault:"paginate" validate:"oneof=paginate single"`
	Timeout  time.Duration `env:"JOTFORM_TIMEOUT" envDefault:"0s"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	// a missing .env is fine, OS variables are used instead
	_ = godotenv.Load()

	return Parse()
}

// Parse builds a Config from the current environment and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
