package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"transit-motion-visualizer/motion"
)

type VehicleFeedSource interface {
	Fetch(ctx context.Context) ([]motion.Fix, error)
}

type GtfsRtVehicleFeedSource struct {
	url        string
	httpClient *http.Client
}

func NewGtfsRtVehicleFeedSource(url string, timeout time.Duration) *GtfsRtVehicleFeedSource {
	return &GtfsRtVehicleFeedSource{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *GtfsRtVehicleFeedSource) Fetch(ctx context.Context) ([]motion.Fix, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gtfs-rt http status: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var feed gtfs.FeedMessage
	if err := proto.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("gtfs-rt decode: %w", err)
	}
	return fixesFromFeed(&feed), nil
}

// fixesFromFeed keeps vehicle positions with an identity and a position.
// Feeds without vehicle descriptors are identified by trip id.
func fixesFromFeed(feed *gtfs.FeedMessage) []motion.Fix {
	fixes := make([]motion.Fix, 0, len(feed.GetEntity()))
	for _, ent := range feed.GetEntity() {
		vp := ent.GetVehicle()
		if vp == nil || vp.Position == nil {
			continue
		}
		id := vp.GetVehicle().GetId()
		if id == "" {
			id = vp.GetTrip().GetTripId()
		}
		if id == "" {
			continue
		}
		pos := vp.GetPosition()
		fixes = append(fixes, motion.Fix{
			ID:     id,
			Route:  vp.GetTrip().GetRouteId(),
			Lat:    float64(pos.GetLatitude()),
			Lon:    float64(pos.GetLongitude()),
			Status: motion.Status(vp.GetCurrentStatus()),
		})
	}
	return fixes
}
