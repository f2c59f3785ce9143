package tracks

import (
	"sort"
	"strings"

	"github.com/paulmach/orb"
)

// Index maps route keys to their track segments. It is read-only once built.
type Index struct {
	segments map[string][]orb.LineString
}

// NewIndex builds an index from segments keyed by route. Keys are uppercased;
// lines with fewer than two vertices are dropped.
func NewIndex(byRoute map[string][]orb.LineString) *Index {
	idx := &Index{segments: make(map[string][]orb.LineString, len(byRoute))}
	for key, lines := range byRoute {
		for _, ls := range lines {
			idx.add(key, ls)
		}
	}
	return idx
}

func (idx *Index) add(key string, ls orb.LineString) {
	key = strings.ToUpper(strings.TrimSpace(key))
	if key == "" || len(ls) < 2 {
		return
	}
	idx.segments[key] = append(idx.segments[key], ls)
}

// Segments returns the route's segments in load order, or nil.
func (idx *Index) Segments(key string) []orb.LineString {
	if idx == nil {
		return nil
	}
	return idx.segments[strings.ToUpper(key)]
}

// Routes returns the indexed route keys, sorted.
func (idx *Index) Routes() []string {
	keys := make([]string, 0, len(idx.segments))
	for k := range idx.segments {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the total number of segments.
func (idx *Index) Len() int {
	n := 0
	for _, s := range idx.segments {
		n += len(s)
	}
	return n
}
