// Package app wires configuration, logging and the store into the inventory
// services shared by every binary.
package app

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mstfugurlu/inventory/internal/config"
	"github.com/mstfugurlu/inventory/internal/export"
	"github.com/mstfugurlu/inventory/internal/inventory"
	"github.com/mstfugurlu/inventory/internal/logger"
	"github.com/mstfugurlu/inventory/internal/service"
	"github.com/mstfugurlu/inventory/internal/store"
)

type App struct {
	Config *config.Config
	Store  *store.Store
	Log    zerolog.Logger
}

// Open loads configuration from configPath (see config.Path), initializes
// logging and opens the store.
func Open(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Debug:  cfg.LogDebug,
		Output: cfg.LogOutput,
	}); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	st, err := store.Open(store.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN})
	if err != nil {
		return nil, err
	}

	return &App{
		Config: cfg,
		Store:  st,
		Log:    logger.GetLogger(),
	}, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}

func (a *App) Ingester() *inventory.LeaseIngester {
	return inventory.NewLeaseIngester(a.Store, inventory.IngestOptions{
		UpdateOnMismatch: a.Config.UpdateOnMismatch,
	}, a.Log)
}

func (a *App) Hook() *inventory.HookHandler {
	return inventory.NewHookHandler(a.Ingester())
}

func (a *App) Mappings() *inventory.MappingManager {
	return inventory.NewMappingManager(a.Store, a.Store, a.Log)
}

func (a *App) View() *inventory.View {
	return inventory.NewView(a.Store)
}

func (a *App) Exporter() *export.Exporter {
	return export.New(a.View(), export.DefaultRegistry(), service.NewCommandReloader(a.Config.ReloadCommand), a.Log)
}
