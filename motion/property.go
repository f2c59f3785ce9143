package motion

import (
	"sort"
	"time"

	"github.com/paulmach/orb"
)

// Sample is one timed position of a MotionProperty.
type Sample struct {
	At       time.Time
	Position orb.Point
}

// MotionProperty is a time-ordered sequence of samples.
// Past the final sample the position holds at the last sample.
type MotionProperty struct {
	samples []Sample
}

// NewMotionProperty returns a property seeded with a single sample.
func NewMotionProperty(at time.Time, p orb.Point) *MotionProperty {
	return &MotionProperty{samples: []Sample{{At: at, Position: p}}}
}

// AddSample inserts a sample keeping time order.
// A sample at an already present timestamp replaces the existing one.
func (m *MotionProperty) AddSample(at time.Time, p orb.Point) {
	i := sort.Search(len(m.samples), func(i int) bool {
		return !m.samples[i].At.Before(at)
	})
	if i < len(m.samples) && m.samples[i].At.Equal(at) {
		m.samples[i].Position = p
		return
	}
	m.samples = append(m.samples, Sample{})
	copy(m.samples[i+1:], m.samples[i:])
	m.samples[i] = Sample{At: at, Position: p}
}

// PositionAt interpolates the position at t.
// It returns false when the property is empty or t precedes the first sample.
func (m *MotionProperty) PositionAt(t time.Time) (orb.Point, bool) {
	n := len(m.samples)
	if n == 0 || t.Before(m.samples[0].At) {
		return orb.Point{}, false
	}
	if !t.Before(m.samples[n-1].At) {
		return m.samples[n-1].Position, true
	}
	// First sample strictly after t; i >= 1 because t >= samples[0].At.
	i := sort.Search(n, func(i int) bool {
		return m.samples[i].At.After(t)
	})
	a, b := m.samples[i-1], m.samples[i]
	span := b.At.Sub(a.At)
	if span <= 0 {
		return b.Position, true
	}
	f := float64(t.Sub(a.At)) / float64(span)
	return orb.Point{
		a.Position[0] + (b.Position[0]-a.Position[0])*f,
		a.Position[1] + (b.Position[1]-a.Position[1])*f,
	}, true
}

func (m *MotionProperty) Len() int {
	return len(m.samples)
}

// Samples returns a copy of the samples in time order.
func (m *MotionProperty) Samples() []Sample {
	out := make([]Sample, len(m.samples))
	copy(out, m.samples)
	return out
}

// Last returns the final sample. The property must not be empty.
func (m *MotionProperty) Last() Sample {
	return m.samples[len(m.samples)-1]
}

func (m *MotionProperty) Clone() *MotionProperty {
	return &MotionProperty{samples: m.Samples()}
}
