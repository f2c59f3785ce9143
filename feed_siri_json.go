package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"transit-motion-visualizer/motion"
)

type SiriJsonVehicleFeedSource struct {
	url        string
	httpClient *http.Client
}

func NewSiriJsonVehicleFeedSource(url string, timeout time.Duration) *SiriJsonVehicleFeedSource {
	return &SiriJsonVehicleFeedSource{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *SiriJsonVehicleFeedSource) Fetch(ctx context.Context) ([]motion.Fix, error) {
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
		return nil, fmt.Errorf("siri json http status: %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(b) {
		return nil, fmt.Errorf("siri json: invalid document")
	}
	return parseSiriJSON(b), nil
}

// parseSiriJSON walks Siri?.ServiceDelivery.VehicleMonitoringDelivery[].VehicleActivity[].
func parseSiriJSON(b []byte) []motion.Fix {
	root := gjson.ParseBytes(b)
	// Handle optional top-level "Siri" wrapper
	if siri := root.Get("Siri"); siri.IsObject() {
		root = siri
	}
	fixes := make([]motion.Fix, 0, 256)
	root.Get("ServiceDelivery.VehicleMonitoringDelivery").ForEach(func(_, vmd gjson.Result) bool {
		vmd.Get("VehicleActivity").ForEach(func(_, va gjson.Result) bool {
			mvj := va.Get("MonitoredVehicleJourney")
			if !mvj.Exists() {
				return true
			}
			id := mvj.Get("VehicleRef").String()
			if id == "" {
				id = mvj.Get("FramedVehicleJourneyRef.DatedVehicleJourneyRef").String()
			}
			lat := mvj.Get("VehicleLocation.Latitude").Float()
			lon := mvj.Get("VehicleLocation.Longitude").Float()
			if id == "" || (lat == 0 && lon == 0) {
				return true
			}
			status := motion.StatusInTransitTo
			if mvj.Get("MonitoredCall.VehicleAtStop").Bool() {
				status = motion.StatusStoppedAt
			}
			fixes = append(fixes, motion.Fix{
				ID:     id,
				Route:  mvj.Get("LineRef").String(),
				Lat:    lat,
				Lon:    lon,
				Status: status,
			})
			return true
		})
		return true
	})
	return fixes
}
