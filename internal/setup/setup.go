package setup

import (
	"context"
	"fmt"

	"github.com/openforum-dev/openforum/internal/handler"
	"github.com/openforum-dev/openforum/internal/search"
	"github.com/openforum-dev/openforum/internal/service"
	"github.com/openforum-dev/openforum/internal/storage"
	"github.com/openforum-dev/openforum/internal/storage/memory"
	"github.com/openforum-dev/openforum/internal/storage/pg"
	"github.com/openforum-dev/openforum/shared/config"
	"github.com/openforum-dev/openforum/shared/logger"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config  *config.Config
	Storage storage.Storage
	Engine  search.Engine
	Handler *handler.Handler

	cleanup func()
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	var (
		store   storage.Storage
		markers storage.ReadMarkerStorage
		cleanup func()
	)

	switch cfg.Public.Storage {
	case "", "memory":
		mem := memory.New()
		store, markers = mem, mem
		cleanup = func() {}
	case "postgres":
		pgStorage, err := pg.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		store, markers = pgStorage, pgStorage
		cleanup = func() {
			if err := pgStorage.Cleanup(); err != nil {
				logger.Log.Error("failed to clean up storage", "error", err.Error())
			}
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Public.Storage)
	}

	engine, err := search.New(cfg.Public.IndexPath)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to open search index: %w", err)
	}

	projector := service.NewProjector(store, engine)
	searchSvc := service.NewSearchService(store, markers, engine, cfg.MaxSearchWindow(), cfg.PerPage())
	content := service.NewContent(store, markers, projector)

	// a fresh in-memory index starts empty; replay the store into it
	if cfg.Public.IndexPath == "" {
		if err := content.Rebuild(context.Background()); err != nil {
			logger.Log.Error("index rebuild failed", "error", err.Error())
		}
	}

	h := handler.NewHandler(searchSvc, content, store)

	return &Dependencies{
		Config:  cfg,
		Storage: store,
		Engine:  engine,
		Handler: h,
		cleanup: cleanup,
	}, nil
}

// Cleanup releases the storage connection and the index.
func (d *Dependencies) Cleanup() {
	if err := d.Engine.Close(); err != nil {
		logger.Log.Error("failed to close search index", "error", err.Error())
	}
	d.cleanup()
}
