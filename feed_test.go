package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"transit-motion-visualizer/motion"
)

func serve(t *testing.T, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGtfsRtFetch(t *testing.T) {
	feed := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
		Entity: []*gtfs.FeedEntity{
			{
				Id: proto.String("1"),
				Vehicle: &gtfs.VehiclePosition{
					Trip:          &gtfs.TripDescriptor{TripId: proto.String("trip-1"), RouteId: proto.String("6X")},
					Vehicle:       &gtfs.VehicleDescriptor{Id: proto.String("car-1")},
					Position:      &gtfs.Position{Latitude: proto.Float32(40.75), Longitude: proto.Float32(-73.99)},
					CurrentStatus: gtfs.VehiclePosition_STOPPED_AT.Enum(),
				},
			},
			{
				// No vehicle descriptor: identified by trip.
				Id: proto.String("2"),
				Vehicle: &gtfs.VehiclePosition{
					Trip:     &gtfs.TripDescriptor{TripId: proto.String("trip-2"), RouteId: proto.String("A")},
					Position: &gtfs.Position{Latitude: proto.Float32(40.70), Longitude: proto.Float32(-73.95)},
				},
			},
			{
				// No position.
				Id:      proto.String("3"),
				Vehicle: &gtfs.VehiclePosition{Vehicle: &gtfs.VehicleDescriptor{Id: proto.String("car-3")}},
			},
			{
				// Not a vehicle position.
				Id:         proto.String("4"),
				TripUpdate: &gtfs.TripUpdate{Trip: &gtfs.TripDescriptor{TripId: proto.String("trip-4")}},
			},
		},
	}
	body, err := proto.Marshal(feed)
	require.NoError(t, err)
	srv := serve(t, body)

	fixes, err := NewGtfsRtVehicleFeedSource(srv.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, fixes, 2)
	assert.Equal(t, motion.Fix{
		ID: "car-1", Route: "6X",
		Lat: float64(float32(40.75)), Lon: float64(float32(-73.99)),
		Status: motion.StatusStoppedAt,
	}, fixes[0])
	assert.Equal(t, "trip-2", fixes[1].ID)
	assert.Equal(t, motion.StatusInTransitTo, fixes[1].Status)
}

func TestGtfsRtFetchErrors(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer bad.Close()
	_, err := NewGtfsRtVehicleFeedSource(bad.URL, time.Second).Fetch(context.Background())
	assert.ErrorContains(t, err, "502")

	garbage := serve(t, []byte{0xff, 0xff, 0xff})
	_, err = NewGtfsRtVehicleFeedSource(garbage.URL, time.Second).Fetch(context.Background())
	assert.Error(t, err)
}

const siriJSON = `{"Siri": {"ServiceDelivery": {"VehicleMonitoringDelivery": [{"VehicleActivity": [
  {"MonitoredVehicleJourney": {"VehicleRef": "bus-1", "LineRef": "M15",
    "VehicleLocation": {"Latitude": 40.71, "Longitude": "-73.99"},
    "MonitoredCall": {"VehicleAtStop": true}}},
  {"MonitoredVehicleJourney": {"FramedVehicleJourneyRef": {"DatedVehicleJourneyRef": "j-2"}, "LineRef": "B44",
    "VehicleLocation": {"Latitude": 40.60, "Longitude": -73.95}}},
  {"MonitoredVehicleJourney": {"VehicleRef": "bus-3", "VehicleLocation": {"Latitude": 0, "Longitude": 0}}},
  {"RecordedAtTime": "2024-05-01T08:00:00Z"}
]}]}}}`

func TestSiriJsonFetch(t *testing.T) {
	srv := serve(t, []byte(siriJSON))

	fixes, err := NewSiriJsonVehicleFeedSource(srv.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, fixes, 2)
	assert.Equal(t, motion.Fix{ID: "bus-1", Route: "M15", Lat: 40.71, Lon: -73.99, Status: motion.StatusStoppedAt}, fixes[0])
	assert.Equal(t, motion.Fix{ID: "j-2", Route: "B44", Lat: 40.60, Lon: -73.95, Status: motion.StatusInTransitTo}, fixes[1])
}

func TestSiriJsonWithoutWrapper(t *testing.T) {
	fixes := parseSiriJSON([]byte(`{"ServiceDelivery": {"VehicleMonitoringDelivery": [{"VehicleActivity": [
	  {"MonitoredVehicleJourney": {"VehicleRef": "v", "VehicleLocation": {"Latitude": 1, "Longitude": 2}}}]}]}}`))
	require.Len(t, fixes, 1)
	assert.Equal(t, "v", fixes[0].ID)
}

func TestSiriJsonInvalid(t *testing.T) {
	srv := serve(t, []byte(`{"Siri": `))
	_, err := NewSiriJsonVehicleFeedSource(srv.URL, time.Second).Fetch(context.Background())
	assert.Error(t, err)
}

const siriXML = `<?xml version="1.0" encoding="UTF-8"?>
<Siri xmlns="http://www.siri.org.uk/siri" version="2.0">
  <ServiceDelivery>
    <VehicleMonitoringDelivery>
      <VehicleActivity>
        <MonitoredVehicleJourney>
          <LineRef>7</LineRef>
          <VehicleLocation><Longitude>-73.95</Longitude><Latitude>40.75</Latitude></VehicleLocation>
          <VehicleRef>train-7</VehicleRef>
          <MonitoredCall><VehicleAtStop>true</VehicleAtStop></MonitoredCall>
        </MonitoredVehicleJourney>
      </VehicleActivity>
      <VehicleActivity>
        <MonitoredVehicleJourney>
          <LineRef>A</LineRef>
          <VehicleLocation><Longitude>-73.90</Longitude><Latitude>40.70</Latitude></VehicleLocation>
          <VehicleRef>train-a</VehicleRef>
        </MonitoredVehicleJourney>
      </VehicleActivity>
      <VehicleActivity>
        <MonitoredVehicleJourney><VehicleRef>no-location</VehicleRef></MonitoredVehicleJourney>
      </VehicleActivity>
    </VehicleMonitoringDelivery>
  </ServiceDelivery>
</Siri>`

func TestSiriXmlFetch(t *testing.T) {
	srv := serve(t, []byte(siriXML))

	fixes, err := NewSiriXmlVehicleFeedSource(srv.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, fixes, 2)
	assert.Equal(t, motion.Fix{ID: "train-7", Route: "7", Lat: 40.75, Lon: -73.95, Status: motion.StatusStoppedAt}, fixes[0])
	assert.Equal(t, motion.Fix{ID: "train-a", Route: "A", Lat: 40.70, Lon: -73.90, Status: motion.StatusInTransitTo}, fixes[1])
}
