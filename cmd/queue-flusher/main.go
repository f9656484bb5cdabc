package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/partsdesk/partsdesk-backend/pkg/config"
	"github.com/partsdesk/partsdesk-backend/pkg/db"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
	"github.com/partsdesk/partsdesk-backend/pkg/metrics"
	"github.com/partsdesk/partsdesk-backend/pkg/offline"
)

// Drains the local offline queue against the API whenever the backend
// is reachable. Runs alongside the intake client on kiosk machines.
func main() {
	logg := logger.New(logger.Options{ServiceName: "queue-flusher"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "queue-flusher",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	queueDB, err := db.New(context.Background(), config.DBConfig{
		Driver: "sqlite",
		DSN:    cfg.Offline.QueuePath,
	}, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to open offline queue database", err)
		os.Exit(1)
	}
	defer func() {
		if err := queueDB.Close(); err != nil {
			logg.Error(context.Background(), "error closing queue database", err)
		}
	}()

	queue, err := offline.NewQueue(queueDB.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to prepare offline queue", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	queueMetrics := metrics.NewQueueMetrics(registry)

	client := &http.Client{Timeout: 30 * time.Second}
	flusher, err := offline.NewFlusher(queue, client, cfg.Offline.BaseURL, cfg.Offline, logg, queueMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create flusher", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCtx := logg.WithFields(ctx, map[string]any{
		"base_url":   cfg.Offline.BaseURL,
		"queue_path": cfg.Offline.QueuePath,
	})
	logg.Info(runCtx, "starting offline queue flusher")
	flusher.Run(ctx)
	logg.Info(runCtx, "offline queue flusher stopped")
}
