package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/disaster-atlas/internal/adapter/csvfile"
	"github.com/couchcryptid/disaster-atlas/internal/adapter/mapbox"
	"github.com/couchcryptid/disaster-atlas/internal/atlas"
	"github.com/couchcryptid/disaster-atlas/internal/config"
	"github.com/couchcryptid/disaster-atlas/internal/domain"
	"github.com/couchcryptid/disaster-atlas/internal/observability"
)

// app holds what every subcommand needs: config, logging, metrics and the loaded dataset.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
	dataset *domain.Dataset
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ds, err := csvfile.LoadFile(cfg.DatasetPath, logger)
	if err != nil {
		return nil, err
	}

	// Optional enrichment of records missing coordinates (MAPBOX_ENABLED / MAPBOX_TOKEN).
	if cfg.MapboxEnabled {
		metrics.GeocodeEnabled.Set(1)
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)

		records, stats := domain.GeocodeMissing(ctx, ds.Records(), geocoder, logger)
		logger.Info("geocoding complete",
			"resolved", stats.Resolved,
			"failed", stats.Failed,
			"skipped", stats.Skipped,
		)
		ds = domain.NewDataset(ds.Source(), records)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	return &app{cfg: cfg, logger: logger, metrics: metrics, dataset: ds}, nil
}

func (a *app) service() *atlas.Service {
	return atlas.New(a.dataset, atlas.Options{
		OutlierTypes:   a.cfg.OutlierTypes,
		PivotThreshold: a.cfg.PivotThreshold,
	}, a.logger, a.metrics)
}
