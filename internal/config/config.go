package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration, read from the environment.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Empty MongoURI keeps games in process memory.
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"chessduel"`

	// Empty RedisURI disables the snapshot cache and the event relay.
	RedisURI   string `env:"REDIS_URI"`
	EventRelay bool   `env:"REDIS_EVENT_RELAY" envDefault:"false"`

	ClientURL      string `env:"CLIENT_URL" envDefault:"http://localhost:5173"`
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	JWTSecret   string `env:"JWT_SECRET"`
	RequireAuth bool   `env:"REQUIRE_AUTH" envDefault:"false"`

	GameCacheTTL         time.Duration `env:"GAME_CACHE_TTL" envDefault:"10m"`
	AbandonAfter         time.Duration `env:"ABANDON_AFTER" envDefault:"0s"`
	AbandonSweepInterval time.Duration `env:"ABANDON_SWEEP_INTERVAL" envDefault:"1m"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that cannot work together.
func (c *Config) Validate() error {
	if c.RequireAuth && c.JWTSecret == "" {
		return errors.New("REQUIRE_AUTH needs JWT_SECRET")
	}
	if c.EventRelay && c.RedisURI == "" {
		return errors.New("REDIS_EVENT_RELAY needs REDIS_URI")
	}
	if c.AbandonAfter < 0 {
		return errors.New("ABANDON_AFTER must not be negative")
	}
	if c.AbandonAfter > 0 && c.AbandonSweepInterval <= 0 {
		return errors.New("ABANDON_SWEEP_INTERVAL must be positive when ABANDON_AFTER is set")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel converts LogLevel for the slog handler.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
