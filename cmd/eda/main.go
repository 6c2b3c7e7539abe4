// Command eda runs the accident exploratory analysis: it loads the CSV,
// cleans and aggregates it, renders the six artifacts, and optionally
// publishes the aggregations and serves the results over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/accident-eda/internal/adapter/dataset"
	httpadapter "github.com/couchcryptid/accident-eda/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/accident-eda/internal/adapter/kafka"
	"github.com/couchcryptid/accident-eda/internal/adapter/mapbox"
	"github.com/couchcryptid/accident-eda/internal/config"
	"github.com/couchcryptid/accident-eda/internal/domain"
	"github.com/couchcryptid/accident-eda/internal/observability"
	"github.com/couchcryptid/accident-eda/internal/pipeline"
	"github.com/couchcryptid/accident-eda/internal/render"
)

func main() {
	// A missing .env file is fine; the environment alone is enough.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	seed := cfg.SampleSeed
	if !cfg.SeedSet {
		seed = domain.DefaultSeed()
	}

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	var (
		publisher pipeline.Publisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger, metrics)
		publisher = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	reader := dataset.NewReader(cfg.DatasetPath, cfg.MaxRows, logger, metrics)
	p := pipeline.New(reader, render.All(cfg.MapFile), geocoder, publisher, logger, metrics, pipeline.Options{
		OutputDir: cfg.OutputDir,
		Report: domain.ReportOptions{
			TopWeather:   cfg.TopWeather,
			SampleSize:   cfg.SampleSize,
			SampleSeed:   seed,
			HotspotCount: cfg.HotspotCount,
			HotspotCell:  cfg.HotspotCell,
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *httpadapter.Server
	if cfg.Serve {
		srv = httpadapter.NewServer(cfg.HTTPAddr, cfg.OutputDir, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	_, runErr := p.Run(ctx)
	if runErr != nil {
		logger.Error("analysis failed", "error", runErr)
	}

	if srv != nil && runErr == nil {
		logger.Info("serving report", "addr", cfg.HTTPAddr)
		<-ctx.Done()
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	if runErr != nil {
		os.Exit(1)
	}
}
