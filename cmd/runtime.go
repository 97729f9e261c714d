package cmd

import (
	"fmt"

	"stock-reconciler/core/config"
	"stock-reconciler/core/database"
	"stock-reconciler/core/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// loadRuntime loads the configuration and builds the logger.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logg, nil
}

// connectOptional connects to the mapping database. A failure is logged and
// yields nil so callers fall back to the configured mapping.
func connectOptional(cfg database.Config, logg *zap.Logger) *gorm.DB {
	db, err := database.Connect(cfg)
	if err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
		return nil
	}
	logg.Info("Connected to mapping database", zap.String("driver", db.Dialector.Name()))
	return db
}
