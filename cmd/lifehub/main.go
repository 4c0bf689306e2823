package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/matheob255/life-hub/internal/cache"
	"github.com/matheob255/life-hub/internal/config"
	apphttp "github.com/matheob255/life-hub/internal/http"
	applog "github.com/matheob255/life-hub/internal/log"
	"github.com/matheob255/life-hub/internal/seed"
	"github.com/matheob255/life-hub/internal/services"
	"github.com/matheob255/life-hub/internal/storage"
)

func main() {
	// Load .env for local development; absent in production is fine.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := applog.New(cfg.SlogLevel(), applog.ComponentApp)
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err.Error())
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to open store", applog.FieldError, err.Error(), "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Seed {
		if err := seed.Run(ctx, store); err != nil {
			logger.Error("Seeding failed", applog.FieldError, err.Error())
			os.Exit(1)
		}
	}

	views := cache.NewViewCache(cfg.CacheSize, cfg.CacheTTL)
	srv := apphttp.NewServer(cfg,
		services.NewItemService(store),
		services.NewTaxonomyService(store),
		views,
		logger,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		views.Unwrap().Janitor(gctx, cfg.CacheCleanupInterval)
		return nil
	})
	g.Go(func() error {
		srv.Janitor(gctx, cfg.CacheCleanupInterval)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully", applog.FieldOperation, applog.OpShutdown)
}

// openStore picks the backend. The memory backend loses everything on
// restart and exists for demos and smoke tests.
func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.StoreBackend == "memory" {
		return storage.NewMemoryStore(), nil
	}
	return storage.NewSQLiteStore(cfg.SQLiteDBPath)
}
