package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default returns the configuration used when no file is given.
func Default() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Port:              8080,
			ShutdownTimeoutMS: 10_000,
			StaticDir:         "./static",
		},
		Feed: FeedConfig{
			PollIntervalMS: 20_000,
			TimeoutMS:      10_000,
		},
		Tracks: TracksConfig{
			Path: "tracks.geojson",
		},
		Engine: EngineConfig{
			BatchSize:         15,
			FrameIntervalMS:   16,
			VehicleTTLSeconds: 600,
			MatchCacheSize:    4096,
		},
		LogLevel: "info",
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults. The result is not validated, see Validate.
func Load(path string) (AppConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

var ErrFeedSelection = errors.New("provide exactly one of gtfsrtURL, siriXmlURL, siriJsonURL")

// Validate checks field constraints and that exactly one feed is configured.
func Validate(cfg AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	count := 0
	for _, u := range []string{cfg.Feed.GTFSRTURL, cfg.Feed.SiriXMLURL, cfg.Feed.SiriJSONURL} {
		if u != "" {
			count++
		}
	}
	if count != 1 {
		return ErrFeedSelection
	}
	return nil
}
