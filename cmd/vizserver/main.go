package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/zonal-anomaly-viz/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/zonal-anomaly-viz/internal/adapter/kafka"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/adapter/topology"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/config"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/dataset"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/domain"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/observability"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/render"
	"github.com/couchcryptid/zonal-anomaly-viz/internal/state"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// World basemap (feature-flagged via TOPOLOGY_ENABLED).
	var boundaries topology.Provider
	if cfg.TopologyEnabled {
		client := topology.NewClient(cfg.TopologyURL, cfg.TopologyTimeout, logger, metrics)
		boundaries = topology.NewCachedProvider(client, cfg.TopologyURL, cfg.TopologyCacheSize, metrics)
		logger.Info("topology basemap enabled", "url", cfg.TopologyURL, "timeout", cfg.TopologyTimeout)
	} else {
		logger.Info("topology basemap disabled")
	}

	// Grouping activity events (feature-flagged via GROUPING_EVENTS_ENABLED).
	var publisher state.Publisher
	var eventWriter *kafkaadapter.Writer
	if cfg.EventsEnabled {
		eventWriter = kafkaadapter.NewWriter(cfg, logger)
		publisher = eventWriter
		logger.Info("grouping activity events enabled", "topic", cfg.EventsTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("grouping activity events disabled")
	}

	loader := dataset.NewLoader(cfg, logger)
	refresher := dataset.NewRefresher(loader, cfg.DatasetRefreshInterval, logger, metrics)
	store := state.NewStore(domain.DefaultGrouping(), publisher, logger, metrics)

	chart := render.NewChartRenderer(metrics)
	latmap := render.NewMapRenderer(boundaries, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, store, refresher, refresher, chart, latmap, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start dataset refresher.
	go func() {
		if err := refresher.Run(ctx); err != nil {
			logger.Error("dataset refresher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if eventWriter != nil {
		if err := eventWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
