// Package common provides shared utilities for Folio
package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Storage backends
const (
	BackendSurrealDB = "surrealdb"
	BackendSQLite    = "sqlite"
)

// Config holds all configuration for Folio
type Config struct {
	Environment     string        `toml:"environment" env:"FOLIO_ENV"`
	DisplayCurrency string        `toml:"display_currency" env:"FOLIO_DISPLAY_CURRENCY"` // ISO 4217 code for formatted amounts (default "USD")
	Server          ServerConfig  `toml:"server"`
	Storage         StorageConfig `toml:"storage"`
	Chart           ChartConfig   `toml:"chart"`
	Logging         LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string   `toml:"host" env:"FOLIO_HOST"`
	Port           int      `toml:"port" env:"FOLIO_PORT"`
	RateLimit      float64  `toml:"rate_limit" env:"FOLIO_RATE_LIMIT"` // requests per second, 0 disables
	RateBurst      int      `toml:"rate_burst" env:"FOLIO_RATE_BURST"`
	AllowedOrigins []string `toml:"allowed_origins" env:"FOLIO_ALLOWED_ORIGINS" envSeparator:","`
}

// StorageConfig selects and configures the snapshot store.
type StorageConfig struct {
	Backend    string `toml:"backend" env:"FOLIO_STORAGE_BACKEND"` // "surrealdb" or "sqlite"
	Address    string `toml:"address" env:"FOLIO_STORAGE_ADDRESS"`
	Namespace  string `toml:"namespace" env:"FOLIO_STORAGE_NAMESPACE"`
	Database   string `toml:"database" env:"FOLIO_STORAGE_DATABASE"`
	Username   string `toml:"username" env:"FOLIO_STORAGE_USERNAME"`
	Password   string `toml:"password" env:"FOLIO_STORAGE_PASSWORD"`
	SQLitePath string `toml:"sqlite_path" env:"FOLIO_SQLITE_PATH"`
}

// ChartConfig holds chart rendering defaults
type ChartConfig struct {
	Width         int     `toml:"width"`
	Height        int     `toml:"height"`
	DomainPadding float64 `toml:"domain_padding"`
	ShowYTD       bool    `toml:"show_ytd"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string `toml:"level" env:"FOLIO_LOG_LEVEL"`
	Format   string `toml:"format" env:"FOLIO_LOG_FORMAT"` // "console" or "json"
	FilePath string `toml:"file_path" env:"FOLIO_LOG_FILE"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment:     "development",
		DisplayCurrency: "USD",
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			RateLimit:      20,
			RateBurst:      40,
			AllowedOrigins: []string{"*"},
		},
		Storage: StorageConfig{
			Backend:    BackendSurrealDB,
			Address:    "ws://localhost:8000/rpc",
			Namespace:  "folio",
			Database:   "folio",
			Username:   "root",
			Password:   "root",
			SQLitePath: "data/folio.db",
		},
		Chart: ChartConfig{
			Width:         900,
			Height:        400,
			DomainPadding: 0.10,
			ShowYTD:       true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// A local .env file feeds the same overrides; real environment wins.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	validateDisplayCurrency(config)
	config.Storage.Backend = strings.ToLower(strings.TrimSpace(config.Storage.Backend))

	return config, nil
}

// applyEnvOverrides applies FOLIO_* environment variables to config
func applyEnvOverrides(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// validateDisplayCurrency normalises the display currency and falls back to
// USD for codes go-money does not know.
func validateDisplayCurrency(config *Config) {
	code := strings.ToUpper(strings.TrimSpace(config.DisplayCurrency))
	if money.GetCurrency(code) == nil {
		code = "USD"
	}
	config.DisplayCurrency = code
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
