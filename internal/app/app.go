// Package app wires configuration, logging, storage and services into the
// shared core used by cmd/folio-server and cmd/folio.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/services/portfolio"
	"github.com/bobmcallan/folio/internal/storage"
)

// App holds all initialized services and storage.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	PortfolioService interfaces.PortfolioService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// resolveConfigPath checks the provided path, FOLIO_CONFIG, the binary
// directory, then config/folio.toml for development.
func resolveConfigPath(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if env := os.Getenv("FOLIO_CONFIG"); env != "" {
		return env
	}
	candidate := filepath.Join(getBinaryDir(), "folio.toml")
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return "config/folio.toml"
}

// NewApp loads configuration and initializes logging, storage and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	common.LoadVersionFromFile()

	config, err := common.LoadConfig(resolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewAppWithConfig(config)
}

// NewAppWithConfig initializes the application from an already loaded config.
func NewAppWithConfig(config *common.Config) (*App, error) {
	startupStart := time.Now()

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewStorageManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	portfolioService := portfolio.NewService(storageManager, logger, portfolio.OptionsFromConfig(config))

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		PortfolioService: portfolioService,
		StartupTime:      startupStart,
	}

	logger.Info().
		Str("backend", config.Storage.Backend).
		Str("currency", config.DisplayCurrency).
		Dur("startup", time.Since(startupStart)).
		Msg("App initialized")

	return a, nil
}

// Close releases storage resources.
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
		}
	}
}
