package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultTopologyURL is the world-boundaries GeoJSON used for the basemap
// when TOPOLOGY_URL is unset.
const DefaultTopologyURL = "https://raw.githubusercontent.com/johan/world.geo.json/master/countries.geo.json"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Anomaly dataset source: a local CSV path, or an HTTP(S) URL when
	// DatasetURL is set (the URL wins if both are present). A refresh
	// interval of 0 loads once at startup and never again.
	DatasetPath            string
	DatasetURL             string
	DatasetTimeout         time.Duration
	DatasetRefreshInterval time.Duration

	// World-boundaries topology configuration.
	TopologyURL       string
	TopologyEnabled   bool
	TopologyTimeout   time.Duration
	TopologyCacheSize int

	// Grouping activity event publishing (optional Kafka sink).
	EventsEnabled bool
	EventsTopic   string
	KafkaBrokers  []string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	refreshInterval, err := parseDurationEnv("DATASET_REFRESH_INTERVAL", 0)
	if err != nil {
		return nil, err
	}

	datasetTimeout, err := parseDurationEnv("DATASET_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	topologyTimeout, err := parseDurationEnv("TOPOLOGY_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	topologyEnabled := true
	if v := os.Getenv("TOPOLOGY_ENABLED"); v != "" {
		topologyEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DatasetPath:            envOrDefault("DATASET_PATH", "data/zonal_anomalies.csv"),
		DatasetURL:             os.Getenv("DATASET_URL"),
		DatasetTimeout:         datasetTimeout,
		DatasetRefreshInterval: refreshInterval,

		TopologyURL:       envOrDefault("TOPOLOGY_URL", DefaultTopologyURL),
		TopologyEnabled:   topologyEnabled,
		TopologyTimeout:   topologyTimeout,
		TopologyCacheSize: parseTopologyCacheSize(),

		EventsEnabled: os.Getenv("GROUPING_EVENTS_ENABLED") == "true",
		EventsTopic:   envOrDefault("GROUPING_EVENTS_TOPIC", "grouping-activity"),
		KafkaBrokers:  parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
	}

	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	if cfg.DatasetRefreshInterval < 0 {
		return nil, errors.New("invalid DATASET_REFRESH_INTERVAL")
	}
	if cfg.DatasetTimeout <= 0 {
		return nil, errors.New("invalid DATASET_TIMEOUT")
	}
	if cfg.TopologyTimeout <= 0 {
		return nil, errors.New("invalid TOPOLOGY_TIMEOUT")
	}
	if cfg.DatasetPath == "" && cfg.DatasetURL == "" {
		return nil, errors.New("one of DATASET_PATH or DATASET_URL is required")
	}
	if cfg.TopologyEnabled && cfg.TopologyURL == "" {
		return nil, errors.New("TOPOLOGY_ENABLED is true but TOPOLOGY_URL is not set")
	}
	if cfg.EventsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("GROUPING_EVENTS_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.EventsEnabled && cfg.EventsTopic == "" {
		return nil, errors.New("GROUPING_EVENTS_ENABLED is true but GROUPING_EVENTS_TOPIC is not set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func parseTopologyCacheSize() int {
	if s := os.Getenv("TOPOLOGY_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 16
}
