// Package providers contains dependency injection providers for the LinkCheck server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfpost/linkcheck/internal/config"
	"github.com/shelfpost/linkcheck/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(_ do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting LinkCheck server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Store.DataPath,
		"max_links_per_title", cfg.Links.MaxPerTitle,
	)

	return log, nil
}
