package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/gps-points-dashboard/internal/adapter/dataset"
	httpadapter "github.com/couchcryptid/gps-points-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/gps-points-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/gps-points-dashboard/internal/adapter/render"
	"github.com/couchcryptid/gps-points-dashboard/internal/config"
	"github.com/couchcryptid/gps-points-dashboard/internal/dashboard"
	"github.com/couchcryptid/gps-points-dashboard/internal/observability"
	"github.com/joho/godotenv"
)

func main() {
	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("failed to read .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	data, stats, err := dataset.NewLoader(logger).Load(cfg.PointsPath, cfg.BoundaryPath, cfg.BoundaryNameColumn)
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}
	logger.Info("Total valid GPS points",
		"count", stats.Points.Valid,
		"dropped", stats.Points.Dropped,
		"boundaries", stats.Boundaries,
		"skipped_geometries", stats.SkippedGeometries,
	)
	metrics.PointsLoaded.Set(float64(stats.Points.Valid))
	metrics.PointsDropped.Set(float64(stats.Points.Dropped))
	metrics.BoundariesLoaded.Set(float64(stats.Boundaries))

	// Selection events are feature-flagged via KAFKA_BROKERS.
	var (
		recorder dashboard.SelectionRecorder
		writer   *kafkaadapter.Writer
	)
	if cfg.SelectionEventsEnabled() {
		writer = kafkaadapter.NewWriter(cfg, logger, metrics)
		recorder = writer
		metrics.SelectionEventsEnabled.Set(1)
		logger.Info("selection events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSelectionTopic)
	} else {
		logger.Info("selection events disabled")
	}

	maps := render.NewMapRenderer(cfg.MapboxToken, logger, metrics)
	svc := dashboard.New(data, maps, render.NewChartRenderer(), recorder, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, render.NewPageRenderer(), logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("dashboard listening", "addr", cfg.HTTPAddr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
