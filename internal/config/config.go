package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
// With nothing set, the defaults reproduce the fixed deployment: the survey
// files in the working directory served on 0.0.0.0:8050.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	PointsPath         string
	BoundaryPath       string
	BoundaryNameColumn string

	// Satellite tiles come from Mapbox when a token is set, Esri otherwise.
	MapboxToken string

	// Selection events are published only when brokers are configured.
	KafkaBrokers        []string
	KafkaSelectionTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", "0.0.0.0:8050"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		PointsPath:         sharedcfg.EnvOrDefault("POINTS_PATH", "Maize_Fingerprint_2015_EC_GPS_onlyUpdated.csv"),
		BoundaryPath:       sharedcfg.EnvOrDefault("BOUNDARY_PATH", "eth_admin1.shp"),
		BoundaryNameColumn: sharedcfg.EnvOrDefault("BOUNDARY_NAME_COLUMN", "adm1_name"),

		MapboxToken: os.Getenv("MAPBOX_TOKEN"),

		KafkaBrokers:        brokers,
		KafkaSelectionTopic: sharedcfg.EnvOrDefault("KAFKA_SELECTION_TOPIC", "dashboard-selections"),
	}

	if cfg.PointsPath == "" {
		return nil, errors.New("POINTS_PATH is required")
	}
	if cfg.BoundaryPath == "" {
		return nil, errors.New("BOUNDARY_PATH is required")
	}
	if cfg.BoundaryNameColumn == "" {
		return nil, errors.New("BOUNDARY_NAME_COLUMN is required")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	if cfg.SelectionEventsEnabled() && cfg.KafkaSelectionTopic == "" {
		return nil, errors.New("KAFKA_SELECTION_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// SelectionEventsEnabled reports whether a Kafka sink is configured.
func (c *Config) SelectionEventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
