package config

import (
	"errors"
	"os"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DatasetPath     string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Views.
	PivotThreshold int
	OutlierTypes   []string
	RateLimitRPS   int
	ChartCacheSize int

	// Kafka replay.
	KafkaBrokers []string
	KafkaTopic   string
	BatchSize    int

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := parseDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	pivotThreshold, err := parseInt("PIVOT_THRESHOLD", 15, 0, -1)
	if err != nil {
		return nil, err
	}

	rateLimit, err := parseInt("RATE_LIMIT_RPS", 20, 1, -1)
	if err != nil {
		return nil, err
	}

	chartCacheSize, err := parseInt("CHART_CACHE_SIZE", 128, 1, -1)
	if err != nil {
		return nil, err
	}

	batchSize, err := parseInt("BATCH_SIZE", 100, 1, 1000)
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		DatasetPath:     envOrDefault("DATASET_PATH", "./assets/dataset/cleaned_data.csv"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		PivotThreshold: pivotThreshold,
		OutlierTypes:   splitList(envOrDefault("OUTLIER_TYPES", "Earthquake,Flood,Storm")),
		RateLimitRPS:   rateLimit,
		ChartCacheSize: chartCacheSize,

		KafkaBrokers: splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "disaster-records"),
		BatchSize:    batchSize,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseCacheSize("MAPBOX_CACHE_SIZE", 1000),
	}

	if cfg.DatasetPath == "" {
		return nil, errors.New("DATASET_PATH is required")
	}
	if len(cfg.OutlierTypes) == 0 {
		return nil, errors.New("OUTLIER_TYPES must name at least one disaster type")
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}
