package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/tilesmith/internal/config"
	"github.com/vk/tilesmith/internal/ctxlog"
	"github.com/vk/tilesmith/internal/registry"
	"github.com/vk/tilesmith/internal/tileset"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	model    *config.Model
	tiles    *tileset.Set
}

// NewApp is the constructor for the main application. It loads the assets,
// builds and registers their tiles next to any extra modules, and validates
// the registry. A nil loader selects the one for cfg.Format.
//
// Invalid assets are a fatal startup error and panic.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if loader == nil {
		loader = NewLoader(cfg.Format)
	}
	if loader == nil {
		panic(fmt.Errorf("no loader for asset format %q", cfg.Format))
	}

	model, err := loader.Load(ctx, cfg.AssetsPath)
	if err != nil {
		panic(fmt.Errorf("failed to load assets: %w", err))
	}
	if err := model.Validate(); err != nil {
		panic(fmt.Errorf("invalid assets: %w", err))
	}
	logger.Debug("Assets loaded.", "tiles", model.TileCount(), "paint", len(model.Paint))

	tiles, err := tileset.Build(ctx, model)
	if err != nil {
		panic(fmt.Errorf("failed to build tiles: %w", err))
	}

	reg := registry.New()
	tiles.Register(reg)
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All tile modules registered.", "count", len(modules)+1, "identities", reg.Len())

	if err := reg.ValidateRegistry(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		model:    model,
		tiles:    tiles,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the loaded assets.
func (a *App) Model() *config.Model {
	return a.model
}
