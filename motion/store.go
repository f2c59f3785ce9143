package motion

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/paulmach/orb"
)

// VehicleState is the engine's tracking state for one vehicle id.
type VehicleState struct {
	ID     string
	Route  string
	Motion *MotionProperty

	// TrackSpace is the last position snapped onto track geometry,
	// or the raw position after an identity reset. Nil until known.
	TrackSpace *orb.Point

	LastSeenAt time.Time
}

// Store holds vehicle states keyed by id. Entries not touched within the
// TTL expire and are reported by Sweep.
type Store struct {
	cache *ttlcache.Cache[string, *VehicleState]
	ids   map[string]struct{}
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: ttlcache.New[string, *VehicleState](
			ttlcache.WithTTL[string, *VehicleState](ttl),
			ttlcache.WithDisableTouchOnHit[string, *VehicleState](),
		),
		ids: make(map[string]struct{}),
	}
}

func (s *Store) Get(id string) (*VehicleState, bool) {
	item := s.cache.Get(id)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

// Create stores a new state seeded with a single sample at p.
// trackSpace is nil when p is a raw, unmatched position.
func (s *Store) Create(fix Fix, p orb.Point, trackSpace *orb.Point, now time.Time) *VehicleState {
	st := &VehicleState{
		ID:         fix.ID,
		Route:      fix.Route,
		Motion:     NewMotionProperty(now, p),
		TrackSpace: trackSpace,
		LastSeenAt: now,
	}
	s.cache.Set(fix.ID, st, ttlcache.DefaultTTL)
	s.ids[fix.ID] = struct{}{}
	return st
}

// Touch records a sighting and extends the entry's TTL.
func (s *Store) Touch(st *VehicleState, now time.Time) {
	st.LastSeenAt = now
	s.cache.Touch(st.ID)
}

// Sweep drops expired entries and returns their ids.
func (s *Store) Sweep() []string {
	s.cache.DeleteExpired()
	var evicted []string
	for id := range s.ids {
		if !s.cache.Has(id) {
			evicted = append(evicted, id)
			delete(s.ids, id)
		}
	}
	return evicted
}

func (s *Store) Len() int {
	return s.cache.Len()
}
