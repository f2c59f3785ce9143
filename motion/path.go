package motion

import (
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Duration returns how long the animation over distance d meters lasts.
func (c Config) Duration(d float64) time.Duration {
	secs := math.Max(c.MinDuration.Seconds(), d/c.AverageSpeed)
	return time.Duration(secs * float64(time.Second))
}

// Slice returns the vertices of line between the points nearest to from and to,
// oriented so that it runs from the from end towards the to end.
func Slice(line orb.LineString, from, to orb.Point) orb.LineString {
	start, ok := locate(line, from)
	if !ok {
		return nil
	}
	stop, _ := locate(line, to)

	first, last := start, stop
	if stop.index < start.index {
		first, last = stop, start
	}
	out := orb.LineString{first.point}
	for i := first.index + 1; i <= last.index; i++ {
		out = appendDistinct(out, line[i])
	}
	out = appendDistinct(out, last.point)

	if backwards(out, from, to) {
		out.Reverse()
	}
	return out
}

// appendDistinct drops a vertex equal to the previous one; a located point
// often coincides with the vertex that follows it.
func appendDistinct(ls orb.LineString, p orb.Point) orb.LineString {
	if ls[len(ls)-1] == p {
		return ls
	}
	return append(ls, p)
}

// backwards reports whether the slice's leading tangent points against
// the displacement from -> to.
func backwards(slice orb.LineString, from, to orb.Point) bool {
	if len(slice) < 2 {
		return false
	}
	a, b := mercator(slice[0]), mercator(slice[1])
	f, t := mercator(from), mercator(to)
	dot := (t[0]-f[0])*(b[0]-a[0]) + (t[1]-f[1])*(b[1]-a[1])
	return dot < 0
}

// rebuild computes the replacement motion for a vehicle currently at current
// heading to match.Snapped. It returns nil when the move is too small to animate.
//
// Waypoints are spread evenly across the duration by index, not by arc length,
// so unevenly spaced vertices produce uneven speeds along the path.
func (e *Engine) rebuild(current orb.Point, match Match, now time.Time) *MotionProperty {
	d := geo.Distance(current, match.Snapped)
	if d < e.cfg.NoOpDistance {
		return nil
	}
	duration := e.cfg.Duration(d)

	m := NewMotionProperty(now, current)
	slice := Slice(match.Segment, current, match.Snapped)
	n := len(slice)
	if n < 2 {
		// current and the target project onto the same track point,
		// typically after an off-track stopped sample.
		m.AddSample(now.Add(duration), match.Snapped)
		return m
	}
	for i, p := range slice {
		offset := time.Duration(float64(duration) * float64(i) / float64(n-1))
		m.AddSample(now.Add(offset), p)
	}
	return m
}
