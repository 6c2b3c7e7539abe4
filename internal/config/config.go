package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all analysis settings, populated from environment variables.
type Config struct {
	DatasetPath string
	MaxRows     int
	OutputDir   string
	MapFile     string

	SampleSize   int
	SampleSeed   uint64
	SeedSet      bool
	TopWeather   int
	HotspotCount int
	HotspotCell  float64

	LogLevel        string
	LogFormat       string
	Serve           bool
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// Kafka publishing of aggregations; disabled when no brokers are set.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaEnabled bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	maxRows, err := parsePositiveInt("MAX_ROWS", 100000)
	if err != nil {
		return nil, err
	}
	sampleSize, err := parsePositiveInt("SAMPLE_SIZE", 5000)
	if err != nil {
		return nil, err
	}
	topWeather, err := parsePositiveInt("TOP_WEATHER", 15)
	if err != nil {
		return nil, err
	}
	hotspotCount, err := parsePositiveInt("HOTSPOT_COUNT", 10)
	if err != nil {
		return nil, err
	}

	hotspotCell, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("HOTSPOT_CELL_DEG", "0.5"), 64)
	if err != nil || hotspotCell <= 0 || hotspotCell > 90 {
		return nil, errors.New("invalid HOTSPOT_CELL_DEG")
	}

	var seed uint64
	seedStr := os.Getenv("SAMPLE_SEED")
	if seedStr != "" {
		seed, err = strconv.ParseUint(seedStr, 10, 64)
		if err != nil {
			return nil, errors.New("invalid SAMPLE_SEED")
		}
	}

	mapboxTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("MAPBOX_TIMEOUT", "5s"))
	if err != nil || mapboxTimeout <= 0 {
		return nil, errors.New("invalid MAPBOX_TIMEOUT")
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	brokers := parseList(os.Getenv("KAFKA_BROKERS"))

	cfg := &Config{
		DatasetPath: sharedcfg.EnvOrDefault("ACCIDENTS_CSV", "US_Accidents_March23.csv"),
		MaxRows:     maxRows,
		OutputDir:   sharedcfg.EnvOrDefault("OUTPUT_DIR", "."),
		MapFile:     sharedcfg.EnvOrDefault("MAP_FILE", "accident_hotspots_map.html"),

		SampleSize:   sampleSize,
		SampleSeed:   seed,
		SeedSet:      seedStr != "",
		TopWeather:   topWeather,
		HotspotCount: hotspotCount,
		HotspotCell:  hotspotCell,

		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		Serve:           os.Getenv("SERVE") == "true",
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout: shutdownTimeout,

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseMapboxCacheSize(),

		KafkaBrokers: brokers,
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "accident-aggregations"),
		KafkaEnabled: len(brokers) > 0,
	}

	if strings.TrimSpace(cfg.DatasetPath) == "" {
		return nil, errors.New("ACCIDENTS_CSV is required")
	}
	if strings.ContainsAny(cfg.MapFile, `/\`) {
		return nil, errors.New("MAP_FILE must be a file name, not a path")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
}

func parseMapboxCacheSize() int {
	if s := os.Getenv("MAPBOX_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
