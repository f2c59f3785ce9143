package motion

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
)

// Tracks provides the independent track segments for a route key.
type Tracks interface {
	Segments(key string) []orb.LineString
}

// Match is the result of snapping a position onto a route's track.
type Match struct {
	Snapped orb.Point
	Segment orb.LineString
	// SegmentIndex is the position of Segment within the route's segments.
	SegmentIndex int
}

type matchKey struct {
	route string
	p     orb.Point
}

// Matcher finds the nearest track segment for a position, scoped per route.
type Matcher struct {
	tracks Tracks
	cache  *lru.Cache[matchKey, Match]
}

func NewMatcher(tracks Tracks, cacheSize int) *Matcher {
	m := &Matcher{tracks: tracks}
	if cacheSize > 0 {
		// Only fails on a non-positive size.
		m.cache, _ = lru.New[matchKey, Match](cacheSize)
	}
	return m
}

// Match snaps p onto the nearest segment of the route's track.
// On exactly equal distances the segment encountered first wins.
// It returns false when the route has no geometry.
func (m *Matcher) Match(route string, p orb.Point) (Match, bool) {
	if m.tracks == nil {
		return Match{}, false
	}
	key := matchKey{route: route, p: p}
	if m.cache != nil {
		if hit, ok := m.cache.Get(key); ok {
			return hit, true
		}
	}
	segments := m.tracks.Segments(route)
	if len(segments) == 0 {
		return Match{}, false
	}

	best := -1
	var bestLoc lineLocation
	for i, seg := range segments {
		loc, ok := locate(seg, p)
		if !ok {
			continue
		}
		if best < 0 || loc.dist < bestLoc.dist {
			best, bestLoc = i, loc
		}
	}
	if best < 0 {
		return Match{}, false
	}
	match := Match{
		Snapped:      bestLoc.point,
		Segment:      segments[best],
		SegmentIndex: best,
	}
	if m.cache != nil {
		m.cache.Add(key, match)
	}
	return match, true
}

// lineLocation is the nearest point on a line to some query point.
type lineLocation struct {
	point orb.Point
	// index of the vertex starting the sub-segment that holds point.
	index int
	// dist is measured in Web Mercator units; only comparisons are meaningful.
	dist float64
}

// locate projects p onto the nearest sub-segment of line.
func locate(line orb.LineString, p orb.Point) (lineLocation, bool) {
	switch len(line) {
	case 0:
		return lineLocation{}, false
	case 1:
		return lineLocation{
			point: line[0],
			dist:  planar.Distance(mercator(line[0]), mercator(p)),
		}, true
	}

	q := mercator(p)
	best := lineLocation{index: -1}
	for i := 0; i < len(line)-1; i++ {
		a, b := mercator(line[i]), mercator(line[i+1])
		proj, t := projectOnSegment(a, b, q)
		d := planar.Distance(proj, q)
		if best.index < 0 || d < best.dist {
			best.index, best.dist = i, d
			switch {
			case t <= 0:
				best.point = line[i]
			case t >= 1:
				best.point = line[i+1]
			default:
				best.point = project.Mercator.ToWGS84(proj)
			}
		}
	}
	return best, true
}

// projectOnSegment returns the point of segment ab nearest to q,
// and its clamped parameter along ab.
func projectOnSegment(a, b, q orb.Point) (orb.Point, float64) {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return a, 0
	}
	t := ((q[0]-a[0])*dx + (q[1]-a[1])*dy) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return orb.Point{a[0] + t*dx, a[1] + t*dy}, t
}

func mercator(p orb.Point) orb.Point {
	return project.WGS84.ToMercator(p)
}
