// Package cli holds the shared pieces of process startup: env file
// loading, logger setup, config validation, and blob backend selection.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"cashflow/internal/blob"
	"cashflow/internal/blob/memory"
	"cashflow/internal/blob/sqlite"
	"cashflow/internal/config"
	applog "cashflow/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the root logger from config and installs it as
// the process default.
func SetupLogger(cfg *config.Config) *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenBlobStore builds the configured blob backend. The sqlite variant
// returns a closer for shutdown; memory needs none.
func OpenBlobStore(logger *applog.Logger, cfg *config.Config) (blob.Store, func() error) {
	switch cfg.DataBackend {
	case "sqlite":
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite blob store",
				applog.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		logger.Info("Blob store ready", "backend", "sqlite", "path", cfg.SQLiteDBPath)
		return store, store.Close
	default:
		logger.Info("Blob store ready", "backend", "memory")
		return memory.New(), func() error { return nil }
	}
}
