package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"transit-motion-visualizer/config"
	"transit-motion-visualizer/motion"
)

var rootCmd = &cobra.Command{
	Use:   "transit-motion-visualizer",
	Short: "Animate live transit vehicles along their tracks",
	Long: `Polls a GTFS-RT or SIRI VehicleMonitoring feed, snaps every vehicle onto
its route's track geometry and streams timed motion paths to browsers
over a websocket at /data.json.

Settings come from an optional YAML file (--config), overridden by flags
and by MOTION_* environment variables (e.g. MOTION_GTFSRT_URL).`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	defaults := config.Default()
	flags := rootCmd.Flags()
	flags.String("config", "", "path to YAML config file")
	flags.Int("port", defaults.Server.Port, "HTTP port")
	flags.Duration("shutdown_timeout", defaults.Server.ShutdownTimeout(), "HTTP server shutdown timeout")
	flags.String("static_dir", defaults.Server.StaticDir, "directory of frontend files")
	flags.String("gtfsrt_url", "", "GTFS-RT vehicle positions URL (protobuf)")
	flags.String("siri_xml_url", "", "SIRI VehicleMonitoring XML URL")
	flags.String("siri_json_url", "", "SIRI VehicleMonitoring JSON URL")
	flags.Duration("poll_interval", defaults.Feed.PollInterval(), "feed polling interval")
	flags.String("tracks", defaults.Tracks.Path, "GeoJSON file of route track geometry")
	flags.Int("batch_size", defaults.Engine.BatchSize, "fixes processed per frame")
	flags.Duration("vehicle_ttl", defaults.Engine.VehicleTTL(), "forget vehicles unseen for this long (0 keeps them)")
	flags.String("log_level", defaults.LogLevel, "debug, info, warn or error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	setDefaultSlog(cfg.LogLevel)

	hub := newHub()
	geometry := newTrackSource(cfg.Tracks.Path)
	mcfg := motion.DefaultConfig
	mcfg.BatchSize = cfg.Engine.BatchSize
	mcfg.StateTTL = cfg.Engine.VehicleTTL()
	mcfg.MatchCacheSize = cfg.Engine.MatchCacheSize
	engine := motion.New(geometry, hub, motion.WithConfig(mcfg))

	poll := newPoller(selectFeed(cfg.Feed), engine, hub, geometry, pollerConfig{
		interval:  cfg.Feed.PollInterval(),
		frame:     cfg.Engine.FrameInterval(),
		timeout:   cfg.Feed.Timeout(),
		batchSize: cfg.Engine.BatchSize,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           newRouter(hub, cfg.Server.StaticDir),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("server starting on http://localhost:%d/", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// start poller
	pctx, pcancel := context.WithCancel(context.Background())
	go poll.run(pctx)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown initiated...")

	pcancel()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Printf("HTTP server shut down successfully")
	}
	return nil
}

// loadConfig layers the YAML file, then flags and MOTION_* env vars that were
// explicitly set, and validates the result.
func loadConfig(flags *pflag.FlagSet) (config.AppConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("MOTION")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return config.AppConfig{}, err
	}

	path, err := homedir.Expand(v.GetString("config"))
	if err != nil {
		return config.AppConfig{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	applyOverrides(v, flags, &cfg)
	if cfg.Tracks.Path, err = homedir.Expand(cfg.Tracks.Path); err != nil {
		return cfg, err
	}
	return cfg, config.Validate(cfg)
}

func applyOverrides(v *viper.Viper, flags *pflag.FlagSet, cfg *config.AppConfig) {
	set := func(key string) bool {
		// Flag defaults count as set for viper; only take explicit values.
		f := flags.Lookup(key)
		if f != nil && f.Changed {
			return true
		}
		_, ok := os.LookupEnv("MOTION_" + strings.ToUpper(key))
		return ok
	}
	if set("port") {
		cfg.Server.Port = v.GetInt("port")
	}
	if set("shutdown_timeout") {
		cfg.Server.ShutdownTimeoutMS = int(v.GetDuration("shutdown_timeout").Milliseconds())
	}
	if set("static_dir") {
		cfg.Server.StaticDir = v.GetString("static_dir")
	}
	if set("gtfsrt_url") {
		cfg.Feed.GTFSRTURL = v.GetString("gtfsrt_url")
	}
	if set("siri_xml_url") {
		cfg.Feed.SiriXMLURL = v.GetString("siri_xml_url")
	}
	if set("siri_json_url") {
		cfg.Feed.SiriJSONURL = v.GetString("siri_json_url")
	}
	if set("poll_interval") {
		cfg.Feed.PollIntervalMS = int(v.GetDuration("poll_interval").Milliseconds())
	}
	if set("tracks") {
		cfg.Tracks.Path = v.GetString("tracks")
	}
	if set("batch_size") {
		cfg.Engine.BatchSize = v.GetInt("batch_size")
	}
	if set("vehicle_ttl") {
		cfg.Engine.VehicleTTLSeconds = int(v.GetDuration("vehicle_ttl").Seconds())
	}
	if set("log_level") {
		cfg.LogLevel = v.GetString("log_level")
	}
}

func selectFeed(f config.FeedConfig) VehicleFeedSource {
	if f.GTFSRTURL != "" {
		return NewGtfsRtVehicleFeedSource(f.GTFSRTURL, f.Timeout())
	}
	if f.SiriXMLURL != "" {
		return NewSiriXmlVehicleFeedSource(f.SiriXMLURL, f.Timeout())
	}
	return NewSiriJsonVehicleFeedSource(f.SiriJSONURL, f.Timeout())
}

func setDefaultSlog(level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	slog.SetLogLoggerLevel(l)
}
