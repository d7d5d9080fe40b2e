// Package config loads the server's runtime configuration from the environment.
package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the server.
type Config struct {
	AppEnv          string        `envconfig:"APP_ENV" default:"development"`
	AppAddr         string        `envconfig:"APP_ADDR" default:":8080"`
	ReadTimeout     time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"APP_SHUTDOWN_TIMEOUT" default:"10s"`

	DBPath string `envconfig:"DB_PATH" default:"./data/groupspend.db"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// AMQPURL enables expense events when set.
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"groupspend.events"`

	RateLimitPerMinute int    `envconfig:"RATE_LIMIT_PER_MINUTE" default:"300"`
	CORSOrigin         string `envconfig:"CORS_ORIGIN" default:"*"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if len(cfg.JWTSecret) < 16 {
		return nil, errors.New("JWT_SECRET must be at least 16 characters")
	}
	if cfg.JWTTTL <= 0 {
		return nil, errors.New("JWT_TTL must be positive")
	}
	if cfg.RateLimitPerMinute <= 0 {
		return nil, errors.New("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return &cfg, nil
}

// IsProduction returns true when the server runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// EventsEnabled reports whether an AMQP broker is configured.
func (c *Config) EventsEnabled() bool {
	return c.AMQPURL != ""
}
