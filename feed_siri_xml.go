package main

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"transit-motion-visualizer/motion"
)

type SiriXmlVehicleFeedSource struct {
	url        string
	httpClient *http.Client
}

func NewSiriXmlVehicleFeedSource(url string, timeout time.Duration) *SiriXmlVehicleFeedSource {
	return &SiriXmlVehicleFeedSource{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *SiriXmlVehicleFeedSource) Fetch(ctx context.Context) ([]motion.Fix, error) {
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
		return nil, fmt.Errorf("siri xml http status: %d", resp.StatusCode)
	}
	return parseSiriXML(resp.Body)
}

// Streaming extraction for SIRI VM XML (namespace tolerant via Name.Local).
// VehicleAtStop is read from MonitoredCall, which sits inside the journey.
func parseSiriXML(r io.Reader) ([]motion.Fix, error) {
	dec := xml.NewDecoder(r)

	var (
		inSiri, inSD, inVMD, inVA, inMVJ, inVL bool
		curID, curRoute                        string
		curLat, curLon                         string
		curAtStop                              bool
		fixes                                  []motion.Fix
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "Siri":
				inSiri = true
			case "ServiceDelivery":
				if inSiri {
					inSD = true
				}
			case "VehicleMonitoringDelivery":
				if inSD {
					inVMD = true
				}
			case "VehicleActivity":
				if inVMD {
					inVA = true
					curID, curRoute, curLat, curLon = "", "", "", ""
					curAtStop = false
				}
			case "MonitoredVehicleJourney":
				if inVA {
					inMVJ = true
				}
			case "VehicleLocation":
				if inMVJ || inVA {
					inVL = true
				}
			case "VehicleRef":
				if inMVJ || inVA {
					var v string
					if err := dec.DecodeElement(&v, &se); err == nil {
						curID = v
					}
				}
			case "LineRef":
				if inMVJ || inVA {
					var v string
					if err := dec.DecodeElement(&v, &se); err == nil {
						curRoute = v
					}
				}
			case "VehicleAtStop":
				if inMVJ || inVA {
					var v bool
					if err := dec.DecodeElement(&v, &se); err == nil {
						curAtStop = v
					}
				}
			case "Latitude":
				if inVL {
					var v string
					if err := dec.DecodeElement(&v, &se); err == nil {
						curLat = v
					}
				}
			case "Longitude":
				if inVL {
					var v string
					if err := dec.DecodeElement(&v, &se); err == nil {
						curLon = v
					}
				}
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "VehicleLocation":
				inVL = false
			case "MonitoredVehicleJourney":
				inMVJ = false
			case "VehicleActivity":
				if inVA {
					inVA = false
					if curID != "" && curLat != "" && curLon != "" {
						if latf, lonf, ok := parseLatLon(curLat, curLon); ok {
							status := motion.StatusInTransitTo
							if curAtStop {
								status = motion.StatusStoppedAt
							}
							fixes = append(fixes, motion.Fix{ID: curID, Route: curRoute, Lat: latf, Lon: lonf, Status: status})
						}
					}
				}
			case "VehicleMonitoringDelivery":
				inVMD = false
			case "ServiceDelivery":
				inSD = false
			case "Siri":
				inSiri = false
			}
		}
	}
	return fixes, nil
}

func parseLatLon(lat, lon string) (float64, float64, bool) {
	lf, err1 := strconv.ParseFloat(lat, 64)
	if err1 != nil {
		return 0, 0, false
	}
	lo, err2 := strconv.ParseFloat(lon, 64)
	if err2 != nil {
		return 0, 0, false
	}
	return lf, lo, true
}
