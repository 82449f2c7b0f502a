// Package config loads the rentroll configuration: a TOML file with defaults,
// overridden by RENTROLL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	env "github.com/caarlos0/env/v11"
	"github.com/etnz/rentroll"
	"github.com/go-playground/validator/v10"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "RENTROLL_"

// Config holds all rentroll configuration.
type Config struct {
	Database DatabaseConfig `toml:"database" envPrefix:"DATABASE_"`
	Ledger   LedgerConfig   `toml:"ledger" envPrefix:"LEDGER_"`
	Report   ReportConfig   `toml:"report" envPrefix:"REPORT_"`
	Server   ServerConfig   `toml:"server" envPrefix:"SERVER_"`
	Log      LogConfig      `toml:"log" envPrefix:"LOG_"`
}

// DatabaseConfig selects the store.
type DatabaseConfig struct {
	Driver string `toml:"driver" env:"DRIVER" validate:"oneof=sqlite postgres"`
	DSN    string `toml:"dsn" env:"DSN" validate:"required"`
}

// LedgerConfig holds the terms used to generate lease charges.
type LedgerConfig struct {
	Currency     string `toml:"currency" env:"CURRENCY" validate:"len=3,uppercase"`
	ServiceFee   string `toml:"service_fee" env:"SERVICE_FEE" validate:"numeric"`
	DueAfterDays int    `toml:"due_after_days" env:"DUE_AFTER_DAYS" validate:"gte=0,lte=31"`
}

// ReportConfig holds analytics defaults.
type ReportConfig struct {
	Window int `toml:"window" env:"WINDOW" validate:"gte=1,lte=120"`
}

// ServerConfig holds the HTTP api settings.
type ServerConfig struct {
	Addr string `toml:"addr" env:"ADDR" validate:"required"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" env:"LEVEL" validate:"oneof=trace debug info warn error"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "rentroll.db",
		},
		Ledger: LedgerConfig{
			Currency:     rentroll.DefaultCurrency,
			ServiceFee:   "3.99",
			DueAfterDays: 7,
		},
		Report: ReportConfig{Window: 12},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info"},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rentroll")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "rentroll")
}

// Path returns the default path of the config file.
func Path() string { return filepath.Join(Dir(), "config.toml") }

// Load reads the config file at 'path', applies environment overrides and
// validates the result. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %q: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the config to 'path', creating its directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Terms returns the lease terms described by the ledger settings.
func (c LedgerConfig) Terms() (rentroll.Terms, error) {
	fee, err := rentroll.ParseMoney(c.ServiceFee, c.Currency)
	if err != nil {
		return rentroll.Terms{}, fmt.Errorf("service fee %q: %w", c.ServiceFee, err)
	}
	return rentroll.Terms{ServiceFee: fee, DueAfterDays: c.DueAfterDays}, nil
}
