package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Supported store backends for DB_TYPE.
const (
	DBTypeMongo    = "mongodb"
	DBTypePostgres = "postgres"
)

var (
	ErrMissingConnectionURI = errors.New("missing connection URI in environment")
	ErrUnknownDBType        = errors.New("unknown DB_TYPE")
)

// Config holds everything the server reads from the environment.
type Config struct {
	DBType      string `env:"DB_TYPE" envDefault:"mongodb"`
	MongoURI    string `env:"MONGO_URI"`
	MongoDBName string `env:"MONGO_DB_NAME" envDefault:"registerdb"`
	DatabaseURL string `env:"DATABASE_URL"`

	Port      string `env:"PORT" envDefault:"3000"`
	StaticDir string `env:"STATIC_DIR" envDefault:"public"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads an optional .env file and parses the environment into a Config.
// The caller decides what to do with an error; Load never exits the process.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected backend has a connection URI.
func (c *Config) Validate() error {
	switch c.DBType {
	case DBTypeMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("%w: MONGO_URI", ErrMissingConnectionURI)
		}
	case DBTypePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL", ErrMissingConnectionURI)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDBType, c.DBType)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
