package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultBroker   = "localhost:9092"
	testMapboxToken = "pk.test-token"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./assets/dataset/cleaned_data.csv", cfg.DatasetPath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 15, cfg.PivotThreshold)
	assert.Equal(t, []string{"Earthquake", "Flood", "Storm"}, cfg.OutlierTypes)
	assert.Equal(t, 20, cfg.RateLimitRPS)
	assert.Equal(t, 128, cfg.ChartCacheSize)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "disaster-records", cfg.KafkaTopic)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.False(t, cfg.MapboxEnabled)
	assert.Empty(t, cfg.MapboxToken)
	assert.Equal(t, 5*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 1000, cfg.MapboxCacheSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATASET_PATH", "/data/emdat.csv")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("PIVOT_THRESHOLD", "0")
	t.Setenv("OUTLIER_TYPES", " Earthquake , Volcanic activity,,")
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("CHART_CACHE_SIZE", "16")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "custom-topic")
	t.Setenv("BATCH_SIZE", "250")
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_TIMEOUT", "10s")
	t.Setenv("MAPBOX_CACHE_SIZE", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/emdat.csv", cfg.DatasetPath)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 0, cfg.PivotThreshold)
	assert.Equal(t, []string{"Earthquake", "Volcanic activity"}, cfg.OutlierTypes)
	assert.Equal(t, 5, cfg.RateLimitRPS)
	assert.Equal(t, 16, cfg.ChartCacheSize)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-topic", cfg.KafkaTopic)
	assert.Equal(t, 250, cfg.BatchSize)
	assert.True(t, cfg.MapboxEnabled)
	assert.Equal(t, testMapboxToken, cfg.MapboxToken)
	assert.Equal(t, 10*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 500, cfg.MapboxCacheSize)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"SHUTDOWN_TIMEOUT", "-1s"},
		{"MAPBOX_TIMEOUT", "bad"},
		{"PIVOT_THRESHOLD", "-1"},
		{"PIVOT_THRESHOLD", "many"},
		{"RATE_LIMIT_RPS", "0"},
		{"CHART_CACHE_SIZE", "0"},
		{"BATCH_SIZE", "0"},
		{"BATCH_SIZE", "9999"},
		{"OUTLIER_TYPES", " , "},
		{"KAFKA_BROKERS", ""},
		{"KAFKA_TOPIC", ""},
		{"DATASET_PATH", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_MapboxEnabledWithoutToken(t *testing.T) {
	t.Setenv("MAPBOX_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TOKEN")
}

func TestLoad_MapboxExplicitlyDisabled(t *testing.T) {
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.MapboxEnabled)
}

func TestLoad_InvalidMapboxCacheSizeFallsBack(t *testing.T) {
	t.Setenv("MAPBOX_CACHE_SIZE", "-4")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.MapboxCacheSize)
}
