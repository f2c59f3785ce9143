package main

import "transit-motion-visualizer/motion"

const (
	actionSnapshot = "snapshot"
	actionUpdate   = "update"
)

// Sample is one timed waypoint as sent to the frontend.
type Sample struct {
	T   int64   `json:"t"` // unix ms
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Entity is the normalized model expected by the frontend.
// Samples fully replace whatever the client held for the id.
type Entity struct {
	ID      string   `json:"id"`
	Route   string   `json:"route"`
	Color   string   `json:"color"`
	Samples []Sample `json:"samples"`
}

type entityMessage struct {
	Action   string   `json:"action"`
	Entities []Entity `json:"entities"`
	Removed  []string `json:"removed,omitempty"`
}

func entityFrom(e motion.Entity) Entity {
	samples := e.Motion.Samples()
	out := Entity{
		ID:      e.ID,
		Route:   e.Route,
		Color:   e.Style.Color,
		Samples: make([]Sample, 0, len(samples)),
	}
	for _, s := range samples {
		out.Samples = append(out.Samples, Sample{
			T:   s.At.UnixMilli(),
			Lon: s.Position.Lon(),
			Lat: s.Position.Lat(),
		})
	}
	return out
}
