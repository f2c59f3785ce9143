package motion

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Status is the stop status reported with a fix.
// Values follow the GTFS-RT VehicleStopStatus numbering.
type Status int

const (
	StatusIncomingAt  Status = 0
	StatusStoppedAt   Status = 1
	StatusInTransitTo Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusIncomingAt:
		return "INCOMING_AT"
	case StatusStoppedAt:
		return "STOPPED_AT"
	case StatusInTransitTo:
		return "IN_TRANSIT_TO"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Fix is one position report for one vehicle in one polling cycle.
type Fix struct {
	ID     string  `json:"id"`
	Route  string  `json:"route"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Status Status  `json:"status"`
}

// Point returns the raw fix position as a (lon, lat) point.
func (f Fix) Point() orb.Point {
	return orb.Point{f.Lon, f.Lat}
}
