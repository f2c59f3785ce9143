package motion

import (
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		meters float64
		want   time.Duration
	}{
		{0, 20 * time.Second},
		{360, 20 * time.Second},
		{3600, 200 * time.Second},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, DefaultConfig.Duration(tc.meters), "%v m", tc.meters)
	}
	assert.InDelta(t, 83.333, DefaultConfig.Duration(1500).Seconds(), 0.001)
}

func TestSliceFollowsDisplacement(t *testing.T) {
	line := meridianLine(origin, 400, 100)

	forward := Slice(line, line[1], line[3])
	assert.Equal(t, orb.LineString{line[1], line[2], line[3]}, forward)

	backward := Slice(line, line[3], line[1])
	assert.Equal(t, orb.LineString{line[3], line[2], line[1]}, backward)
}

func TestSliceWithinOneSubSegment(t *testing.T) {
	line := meridianLine(origin, 400, 100)
	from, to := north(origin, 250), north(origin, 210)

	s := Slice(line, from, to)

	require.Len(t, s, 2)
	assert.InDelta(t, 0, geo.Distance(s[0], from), 0.01)
	assert.InDelta(t, 0, geo.Distance(s[1], to), 0.01)
}

func TestRebuildSpreadsWaypointsByIndex(t *testing.T) {
	clock := newTestClock()
	e := New(nil, nil, WithClock(clock.now))
	line := orb.LineString{origin, north(origin, 100), north(origin, 1000)}
	now := clock.now()

	m := e.rebuild(origin, Match{Snapped: line[2], Segment: line}, now)

	require.NotNil(t, m)
	samples := m.Samples()
	require.Len(t, samples, 3)
	duration := DefaultConfig.Duration(geo.Distance(origin, line[2]))
	assert.Equal(t, now, samples[0].At)
	assert.Equal(t, now.Add(duration/2), samples[1].At)
	assert.Equal(t, now.Add(duration), samples[2].At)
	assert.Equal(t, line[1], samples[1].Position)
}

func TestRebuildBelowThresholdIsNil(t *testing.T) {
	e := New(nil, nil)
	line := meridianLine(origin, 100, 50)

	assert.Nil(t, e.rebuild(origin, Match{Snapped: north(origin, 9), Segment: line}, time.Now()))
}
