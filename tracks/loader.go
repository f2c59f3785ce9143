package tracks

import (
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// Load reads a GeoJSON FeatureCollection of route geometry.
//
// Every feature names its route in a "route" (or "route_id") property.
// LineString features become one segment each; MultiLineString features
// contribute one segment per line. Other geometry types are ignored.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read tracks")
	}
	return Parse(data)
}

// Parse builds an index from GeoJSON bytes, see Load.
func Parse(data []byte) (*Index, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode tracks geojson")
	}
	idx := &Index{segments: make(map[string][]orb.LineString)}
	for i, f := range fc.Features {
		route := routeOf(f.Properties)
		if route == "" {
			return nil, errors.Errorf("feature %d: missing route property", i)
		}
		switch g := f.Geometry.(type) {
		case orb.LineString:
			idx.add(route, g)
		case orb.MultiLineString:
			for _, ls := range g {
				idx.add(route, ls)
			}
		}
	}
	if len(idx.segments) == 0 {
		return nil, errors.New("no track segments found")
	}
	return idx, nil
}

// routeOf reads the route name, which some exports store as a number.
func routeOf(p geojson.Properties) string {
	for _, key := range []string{"route", "route_id"} {
		switch v := p[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
