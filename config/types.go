package config

import "time"

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port              int    `yaml:"port" validate:"gt=0,lte=65535"`
	ShutdownTimeoutMS int    `yaml:"shutdownTimeoutMS" validate:"gte=0"`
	StaticDir         string `yaml:"staticDir"`
}

// FeedConfig selects the vehicle feed. Exactly one URL must be set.
type FeedConfig struct {
	GTFSRTURL      string `yaml:"gtfsrtURL" validate:"omitempty,url"`
	SiriXMLURL     string `yaml:"siriXmlURL" validate:"omitempty,url"`
	SiriJSONURL    string `yaml:"siriJsonURL" validate:"omitempty,url"`
	PollIntervalMS int    `yaml:"pollIntervalMS" validate:"gte=1000"`
	TimeoutMS      int    `yaml:"timeoutMS" validate:"gt=0"`
}

// TracksConfig points at the route geometry
type TracksConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// EngineConfig tunes batch scheduling and vehicle state retention
type EngineConfig struct {
	BatchSize         int `yaml:"batchSize" validate:"gt=0"`
	FrameIntervalMS   int `yaml:"frameIntervalMS" validate:"gt=0"`
	VehicleTTLSeconds int `yaml:"vehicleTTLSeconds" validate:"gte=0"`
	MatchCacheSize    int `yaml:"matchCacheSize" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server ServerConfig `yaml:"server"`
	Feed   FeedConfig   `yaml:"feed"`
	Tracks TracksConfig `yaml:"tracks"`
	Engine EngineConfig `yaml:"engine"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel" validate:"omitempty,oneof=debug info warn error"`
}

func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutMS) * time.Millisecond
}

func (f FeedConfig) PollInterval() time.Duration {
	return time.Duration(f.PollIntervalMS) * time.Millisecond
}

func (f FeedConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutMS) * time.Millisecond
}

func (e EngineConfig) FrameInterval() time.Duration {
	return time.Duration(e.FrameIntervalMS) * time.Millisecond
}

func (e EngineConfig) VehicleTTL() time.Duration {
	return time.Duration(e.VehicleTTLSeconds) * time.Second
}
