package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMapboxToken = "pk.test-token"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "US_Accidents_March23.csv", cfg.DatasetPath)
	assert.Equal(t, 100000, cfg.MaxRows)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "accident_hotspots_map.html", cfg.MapFile)
	assert.Equal(t, 5000, cfg.SampleSize)
	assert.False(t, cfg.SeedSet)
	assert.Zero(t, cfg.SampleSeed)
	assert.Equal(t, 15, cfg.TopWeather)
	assert.Equal(t, 10, cfg.HotspotCount)
	assert.Equal(t, 0.5, cfg.HotspotCell)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.Serve)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.MapboxEnabled)
	assert.Empty(t, cfg.MapboxToken)
	assert.Equal(t, 5*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 1000, cfg.MapboxCacheSize)
	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "accident-aggregations", cfg.KafkaTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("ACCIDENTS_CSV", "/data/accidents.csv")
	t.Setenv("MAX_ROWS", "2500")
	t.Setenv("OUTPUT_DIR", "/tmp/out")
	t.Setenv("MAP_FILE", "map.html")
	t.Setenv("SAMPLE_SIZE", "100")
	t.Setenv("SAMPLE_SEED", "42")
	t.Setenv("TOP_WEATHER", "5")
	t.Setenv("HOTSPOT_COUNT", "3")
	t.Setenv("HOTSPOT_CELL_DEG", "0.25")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SERVE", "true")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_TIMEOUT", "10s")
	t.Setenv("MAPBOX_CACHE_SIZE", "500")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_TOPIC", "eda")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/accidents.csv", cfg.DatasetPath)
	assert.Equal(t, 2500, cfg.MaxRows)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, "map.html", cfg.MapFile)
	assert.Equal(t, 100, cfg.SampleSize)
	assert.True(t, cfg.SeedSet)
	assert.Equal(t, uint64(42), cfg.SampleSeed)
	assert.Equal(t, 5, cfg.TopWeather)
	assert.Equal(t, 3, cfg.HotspotCount)
	assert.Equal(t, 0.25, cfg.HotspotCell)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.Serve)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.MapboxEnabled)
	assert.Equal(t, testMapboxToken, cfg.MapboxToken)
	assert.Equal(t, 10*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 500, cfg.MapboxCacheSize)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "eda", cfg.KafkaTopic)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"MAX_ROWS", "0"},
		{"MAX_ROWS", "lots"},
		{"SAMPLE_SIZE", "-5"},
		{"TOP_WEATHER", "zero"},
		{"HOTSPOT_COUNT", "0"},
		{"HOTSPOT_CELL_DEG", "0"},
		{"SAMPLE_SEED", "-1"},
		{"MAPBOX_TIMEOUT", "bad"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestLoad_MapFileMustBeName(t *testing.T) {
	t.Setenv("MAP_FILE", "../escape.html")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAP_FILE")
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
