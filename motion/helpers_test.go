package motion

import (
	"math"
	"time"

	"github.com/paulmach/orb"
)

var origin = orb.Point{-73.99, 40.75}

// north offsets p by m meters along its meridian.
func north(p orb.Point, m float64) orb.Point {
	return orb.Point{p[0], p[1] + m/orb.EarthRadius*180/math.Pi}
}

// east offsets p by m meters along its parallel.
func east(p orb.Point, m float64) orb.Point {
	return orb.Point{p[0] + m/(orb.EarthRadius*math.Cos(p[1]*math.Pi/180))*180/math.Pi, p[1]}
}

// meridianLine runs north from start with a vertex every step meters.
func meridianLine(start orb.Point, length, step float64) orb.LineString {
	var ls orb.LineString
	for d := 0.0; d <= length; d += step {
		ls = append(ls, north(start, d))
	}
	return ls
}

type fakeTracks map[string][]orb.LineString

func (f fakeTracks) Segments(key string) []orb.LineString {
	return f[key]
}

type countingTracks struct {
	fakeTracks
	calls int
}

func (c *countingTracks) Segments(key string) []orb.LineString {
	c.calls++
	return c.fakeTracks.Segments(key)
}

type recordingSink struct {
	upserts []Entity
	removed []string
}

func (s *recordingSink) Upsert(e Entity) {
	s.upserts = append(s.upserts, e)
}

func (s *recordingSink) Remove(id string) {
	s.removed = append(s.removed, id)
}

type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *testClock) now() time.Time {
	return c.t
}

func (c *testClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func fixAt(id, route string, p orb.Point, status Status) Fix {
	return Fix{ID: id, Route: route, Lon: p[0], Lat: p[1], Status: status}
}
