package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
feed:
  gtfsrtURL: https://example.com/vehicles.pb
  pollIntervalMS: 30000
engine:
  batchSize: 25
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Feed.PollInterval())
	assert.Equal(t, 10*time.Second, cfg.Feed.Timeout())
	assert.Equal(t, 25, cfg.Engine.BatchSize)
	assert.Equal(t, 16*time.Millisecond, cfg.Engine.FrameInterval())
	assert.Equal(t, 10*time.Minute, cfg.Engine.VehicleTTL())
	assert.Equal(t, "tracks.geojson", cfg.Tracks.Path)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Feed.SiriJSONURL = "https://example.com/vm.json"

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"valid", func(*AppConfig) {}, false},
		{"no feed", func(c *AppConfig) { c.Feed.SiriJSONURL = "" }, true},
		{"two feeds", func(c *AppConfig) { c.Feed.GTFSRTURL = "https://example.com/pb" }, true},
		{"bad url", func(c *AppConfig) { c.Feed.SiriJSONURL = "not a url" }, true},
		{"poll too fast", func(c *AppConfig) { c.Feed.PollIntervalMS = 10 }, true},
		{"no tracks", func(c *AppConfig) { c.Tracks.Path = "" }, true},
		{"zero batch", func(c *AppConfig) { c.Engine.BatchSize = 0 }, true},
		{"bad log level", func(c *AppConfig) { c.LogLevel = "loud" }, true},
		{"no ttl", func(c *AppConfig) { c.Engine.VehicleTTLSeconds = 0 }, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := Validate(cfg)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
