package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the settings for the hearth service. Values are parsed from
// environment variables with the HEARTH_ prefix.
type Config struct {
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// DBDriver selects the entity-store backend: sqlite | postgres | auto.
	// "auto" resolves to postgres when a DSN is configured, sqlite otherwise.
	DBDriver    string `envconfig:"DB_DRIVER" default:"auto"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:""`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Translation service endpoint. The call contract is text in, text out.
	TranslatorURL     string        `envconfig:"TRANSLATOR_URL" default:"https://api.mocktranslate.com"`
	TranslatorTimeout time.Duration `envconfig:"TRANSLATOR_TIMEOUT" default:"10s"`

	SessionCookie string `envconfig:"SESSION_COOKIE" default:"hearth_session"`
}

// New parses the environment and resolves derived defaults.
func New() (*Config, error) {
	var c Config
	if err := envconfig.Process("HEARTH", &c); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	if err := c.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ResolveDefaults derives DBDriver and SQLitePath when left on "auto"/empty.
func (c *Config) ResolveDefaults() error {
	if c.DBDriver == "" || c.DBDriver == "auto" {
		if c.PostgresDSN != "" {
			c.DBDriver = "postgres"
		} else {
			c.DBDriver = "sqlite"
		}
	}
	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			c.SQLitePath = "./data/hearth.db"
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("DB_DRIVER is postgres but POSTGRES_DSN is empty")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	return nil
}
