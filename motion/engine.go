package motion

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"transit-motion-visualizer/routes"
)

// Outcome describes what processing a fix did to the vehicle's state.
type Outcome int

const (
	// OutcomeUnmatched: known vehicle, no geometry for its route; nothing changed.
	OutcomeUnmatched Outcome = iota
	// OutcomeCreated: first sighting of the id.
	OutcomeCreated
	// OutcomeReset: identity discontinuity, motion reset to one sample.
	OutcomeReset
	// OutcomeStopped: stopped vehicle, raw position appended.
	OutcomeStopped
	// OutcomeRebuilt: a new path along the track replaced the motion.
	OutcomeRebuilt
	// OutcomeNoOp: the snapped target is too close to the current position.
	OutcomeNoOp
	// OutcomeStale: the current position could not be interpolated.
	OutcomeStale
)

var outcomeNames = [...]string{"unmatched", "created", "reset", "stopped", "rebuilt", "noop", "stale"}

func (o Outcome) String() string {
	if o >= 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Outcomes lists every outcome, in declaration order.
func Outcomes() []Outcome {
	out := make([]Outcome, len(outcomeNames))
	for i := range out {
		out[i] = Outcome(i)
	}
	return out
}

// Style is the static presentation of an entity.
type Style struct {
	Color string
}

// Entity is a complete rendering registration for one vehicle.
type Entity struct {
	ID     string
	Route  string
	Motion *MotionProperty
	Style  Style
}

// Sink receives full-replacement entity updates.
type Sink interface {
	Upsert(e Entity)
	Remove(id string)
}

type Option func(*Engine)

func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// Engine is the map-matching and motion interpolation context.
type Engine struct {
	cfg     Config
	now     func() time.Time
	log     *slog.Logger
	store   *Store
	matcher *Matcher
	sink    Sink
}

func New(tracks Tracks, sink Sink, opts ...Option) *Engine {
	e := &Engine{
		cfg:  DefaultConfig,
		now:  time.Now,
		log:  slog.With("component", "motion"),
		sink: sink,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.store = NewStore(e.cfg.StateTTL)
	e.matcher = NewMatcher(tracks, e.cfg.MatchCacheSize)
	return e
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Process runs one fix through anomaly detection, track matching and
// path building, then publishes any change to the sink.
func (e *Engine) Process(fix Fix) Outcome {
	now := e.now()
	route, known := routes.Lookup(fix.Route)
	trackKey := strings.ToUpper(fix.Route)
	if known {
		trackKey = route.TrackKey()
	}

	st, exists := e.store.Get(fix.ID)
	if exists {
		e.store.Touch(st, now)
		if outcome, handled := e.guard(st, fix, now); handled {
			st.Route = fix.Route
			e.publish(st, route)
			return outcome
		}
	}

	match, matched := e.matcher.Match(trackKey, fix.Point())
	if !exists {
		if matched {
			snapped := match.Snapped
			st = e.store.Create(fix, snapped, &snapped, now)
		} else {
			st = e.store.Create(fix, fix.Point(), nil, now)
		}
		e.publish(st, route)
		return OutcomeCreated
	}
	if !matched {
		return OutcomeUnmatched
	}

	current, ok := st.Motion.PositionAt(now)
	if !ok {
		e.log.Debug("Vehicle position not resolvable", "id", fix.ID)
		return OutcomeStale
	}
	next := e.rebuild(current, match, now)
	if next == nil {
		return OutcomeNoOp
	}
	st.Motion = next
	st.Route = fix.Route
	snapped := match.Snapped
	st.TrackSpace = &snapped
	e.publish(st, route)
	return OutcomeRebuilt
}

func (e *Engine) publish(st *VehicleState, route routes.Route) {
	if e.sink == nil {
		return
	}
	e.sink.Upsert(Entity{
		ID:     st.ID,
		Route:  st.Route,
		Motion: st.Motion.Clone(),
		Style:  Style{Color: route.Color()},
	})
}

// Sweep evicts vehicles not seen within the state TTL and removes them from the sink.
func (e *Engine) Sweep() []string {
	evicted := e.store.Sweep()
	for _, id := range evicted {
		if e.sink != nil {
			e.sink.Remove(id)
		}
	}
	if len(evicted) > 0 {
		e.log.Info("Evicted stale vehicles", "count", len(evicted))
	}
	return evicted
}

// State returns the tracked state for id. Callers must not retain it across Process calls.
func (e *Engine) State(id string) (*VehicleState, bool) {
	return e.store.Get(id)
}

func (e *Engine) Len() int {
	return e.store.Len()
}
