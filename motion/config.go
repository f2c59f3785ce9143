package motion

import "time"

// Config holds the engine thresholds. Distances are in meters, speeds in m/s.
type Config struct {
	// AnomalyDistance is the displacement from the last track-space position
	// beyond which a fix is treated as a different physical vehicle reusing the id.
	AnomalyDistance float64

	// NoOpDistance is the minimum distance between the current animated position
	// and a new snapped target for the path to be rebuilt.
	NoOpDistance float64

	// AverageSpeed converts path distance into animation duration.
	AverageSpeed float64

	// MinDuration is the floor on animation duration.
	MinDuration time.Duration

	// BatchSize is the number of fixes processed per scheduling step.
	BatchSize int

	// StateTTL evicts vehicles not seen for this long. Zero keeps them forever.
	StateTTL time.Duration

	// MatchCacheSize bounds the nearest-segment result cache. Zero disables it.
	MatchCacheSize int
}

// DefaultConfig is the configuration used when none is given.
var DefaultConfig = Config{
	AnomalyDistance: 2000,
	NoOpDistance:    10,
	AverageSpeed:    18,
	MinDuration:     20 * time.Second,
	BatchSize:       15,
	StateTTL:        10 * time.Minute,
	MatchCacheSize:  4096,
}
