package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the application reads at startup. It is built once
// by Load and passed by value from then on.
type Config struct {
	Env          string
	Addr         string
	DBDriver     string
	DSN          string
	SessionKey   string
	LogLevel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Site         Site
}

// IsProduction reports whether the application runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads the configuration from an optional .env file and COOLSCHOOL_*
// environment variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	v := viper.New()
	v.SetEnvPrefix("COOLSCHOOL")
	v.AutomaticEnv()

	v.SetDefault("env", "development")
	v.SetDefault("addr", ":8080")
	v.SetDefault("db_driver", "sqlite3")
	v.SetDefault("dsn", "coolschool.db?_foreign_keys=on")
	v.SetDefault("session_key", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("read_timeout", 15*time.Second)
	v.SetDefault("write_timeout", 15*time.Second)
	v.SetDefault("idle_timeout", 60*time.Second)
	v.SetDefault("site_name", "Cool School")

	site := DefaultSite()
	site.Name = v.GetString("site_name")

	cfg := Config{
		Env:          v.GetString("env"),
		Addr:         v.GetString("addr"),
		DBDriver:     v.GetString("db_driver"),
		DSN:          v.GetString("dsn"),
		SessionKey:   v.GetString("session_key"),
		LogLevel:     v.GetString("log_level"),
		ReadTimeout:  v.GetDuration("read_timeout"),
		WriteTimeout: v.GetDuration("write_timeout"),
		IdleTimeout:  v.GetDuration("idle_timeout"),
		Site:         site,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted away.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("COOLSCHOOL_ADDR is required")
	}
	switch c.DBDriver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("COOLSCHOOL_DB_DRIVER %q is not supported", c.DBDriver)
	}
	if c.DSN == "" {
		return errors.New("COOLSCHOOL_DSN is required")
	}
	if c.SessionKey != "" && len(c.SessionKey) < 32 {
		return errors.New("COOLSCHOOL_SESSION_KEY must be at least 32 characters long")
	}
	if c.IsProduction() && c.SessionKey == "" {
		return errors.New("COOLSCHOOL_SESSION_KEY is required in production")
	}
	return c.Site.Validate()
}
