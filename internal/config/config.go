package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds the service configuration, parsed from environment variables.
// Secret keys and expiry windows live here and are passed explicitly into the
// components that need them; business logic never reads the environment.
type Config struct {
	Port          int           `env:"PORT"            envDefault:"5000"`
	MongoURI      string        `env:"MONGO_URI"`
	MongoDatabase string        `env:"MONGO_DATABASE"  envDefault:"devlink"`
	JWTSecret     string        `env:"JWT_SECRET"`
	JWTIssuer     string        `env:"JWT_ISSUER"      envDefault:"devlink"`
	JWTExpiresIn  time.Duration `env:"JWT_EXPIRES_IN"  envDefault:"2h"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL" envDefault:"15m"`
	ResetURLBase  string        `env:"RESET_URL_BASE"`
}

// Load parses the configuration from environment variables and validates it.
func Load(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	return &cfg
}

func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}
	if c.ResetURLBase == "" {
		return fmt.Errorf("missing RESET_URL_BASE environment variable")
	}

	return nil
}
