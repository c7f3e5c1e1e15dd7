package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Env       string `env:"ENV"        envDefault:"dev"`  // Environment (dev, staging, prod)
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"` // Log level (debug, info, warn, error)
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // Log format (json, text)
	Port      int    `env:"PORT"       envDefault:"8080"` // HTTP server port

	DatabaseFile   string        `env:"TASKTAB_DATABASE_FILE"   envDefault:"tasktab.db"` // Path to the SQLite database file
	PepperFile     string        `env:"TASKTAB_PEPPER_FILE"     envDefault:"pepper"`     // Path to the secret-hashing pepper file
	SigningKeyFile string        `env:"TASKTAB_SIGNING_KEY_FILE"`                        // Optional: path to an Ed25519 PEM key; ephemeral key if unset
	Issuer         string        `env:"TASKTAB_ISSUER"          envDefault:"tasktab"`    // Issuer claim for tokens
	TokenTTL       time.Duration `env:"TASKTAB_TOKEN_TTL"       envDefault:"24h"`        // Lifetime of issued tokens

	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"` // Graceful shutdown timeout
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
