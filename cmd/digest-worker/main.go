package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/matheob255/life-hub/internal/config"
	applog "github.com/matheob255/life-hub/internal/log"
	"github.com/matheob255/life-hub/internal/storage"
	"github.com/matheob255/life-hub/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := applog.New(cfg.SlogLevel(), applog.ComponentWorker)
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err.Error())
		os.Exit(1)
	}

	store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open store", applog.FieldError, err.Error(), "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	digest := worker.NewDigestWorker(store, logger, cfg.DigestWindowDays)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.DigestSchedule, func() {
		if err := digest.Run(ctx, time.Now()); err != nil {
			logger.Error("Digest run failed", applog.FieldError, err.Error())
		}
	}); err != nil {
		logger.Error("Invalid digest schedule", applog.FieldError, err.Error(), "schedule", cfg.DigestSchedule)
		os.Exit(1)
	}

	// One run at startup so a fresh deployment logs a digest immediately.
	if err := digest.Run(ctx, time.Now()); err != nil {
		logger.Error("Initial digest run failed", applog.FieldError, err.Error())
	}

	logger.Info("Digest worker started",
		"schedule", cfg.DigestSchedule, "window_days", cfg.DigestWindowDays)
	scheduler.Start()

	<-ctx.Done()
	stopCtx := scheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		logger.Warn("Timed out waiting for running digest jobs")
	}
	logger.Info("Digest worker stopped", applog.FieldOperation, applog.OpShutdown)
}
