package main

import (
	"log/slog"

	"github.com/paulmach/orb"

	"transit-motion-visualizer/tracks"
)

// trackSource serves route geometry to the engine. When the initial load
// fails it stays empty, so fixes are dropped, and ensure retries the load
// at the start of every poll cycle.
type trackSource struct {
	path   string
	index  *tracks.Index
	load   func(string) (*tracks.Index, error)
	logger *slog.Logger
}

func newTrackSource(path string) *trackSource {
	s := &trackSource{
		path:   path,
		load:   tracks.Load,
		logger: slog.With("component", "tracks"),
	}
	s.ensure()
	return s
}

// Segments implements motion.Tracks.
func (s *trackSource) Segments(key string) []orb.LineString {
	return s.index.Segments(key)
}

func (s *trackSource) ensure() {
	if s.index != nil {
		return
	}
	idx, err := s.load(s.path)
	if err != nil {
		s.logger.Error("Track geometry unavailable, fixes will be dropped", "path", s.path, "error", err)
		return
	}
	s.index = idx
	s.logger.Info("Track geometry loaded", "routes", len(idx.Routes()), "segments", idx.Len())
}
