// Package routes enumerates the known route identifiers of the network
// together with their display color and the key of their track geometry.
package routes

import "strings"

type Route int

const (
	Unknown Route = iota
	Line1
	Line2
	Line3
	Line4
	Line5
	Line6
	Line7
	LineA
	LineB
	LineC
	LineD
	LineE
	LineF
	LineG
	LineJ
	LineL
	LineM
	LineN
	LineQ
	LineR
	LineW
	LineZ
	ShuttleGrandCentral // GS, 42 St
	ShuttleFranklin     // FS
	ShuttleRockaway     // H
	StatenIsland        // SI
)

const unknownColor = "#808183"

type attrs struct {
	id       string
	color    string
	trackKey string
}

var table = [...]attrs{
	Unknown:             {"", unknownColor, ""},
	Line1:               {"1", "#EE352E", "1"},
	Line2:               {"2", "#EE352E", "2"},
	Line3:               {"3", "#EE352E", "3"},
	Line4:               {"4", "#00933C", "4"},
	Line5:               {"5", "#00933C", "5"},
	Line6:               {"6", "#00933C", "6"},
	Line7:               {"7", "#B933AD", "7"},
	LineA:               {"A", "#0039A6", "A"},
	LineB:               {"B", "#FF6319", "B"},
	LineC:               {"C", "#0039A6", "C"},
	LineD:               {"D", "#FF6319", "D"},
	LineE:               {"E", "#0039A6", "E"},
	LineF:               {"F", "#FF6319", "F"},
	LineG:               {"G", "#6CBE45", "G"},
	LineJ:               {"J", "#996633", "J"},
	LineL:               {"L", "#A7A9AC", "L"},
	LineM:               {"M", "#FF6319", "M"},
	LineN:               {"N", "#FCCC0A", "N"},
	LineQ:               {"Q", "#FCCC0A", "Q"},
	LineR:               {"R", "#FCCC0A", "R"},
	LineW:               {"W", "#FCCC0A", "W"},
	LineZ:               {"Z", "#996633", "Z"},
	ShuttleGrandCentral: {"GS", unknownColor, "GS"},
	ShuttleFranklin:     {"FS", unknownColor, "FS"},
	ShuttleRockaway:     {"H", unknownColor, "H"},
	StatenIsland:        {"SI", "#0039A6", "SI"},
}

var byID = func() map[string]Route {
	m := make(map[string]Route, len(table))
	for r, a := range table {
		if a.id != "" {
			m[a.id] = Route(r)
		}
	}
	return m
}()

// Lookup resolves a feed route id, case-insensitively.
//
// Ids that are not listed resolve by their first character: express and
// variant services are named after their base line ("6X" is the 6, "FX"
// the F). This holds for any unlisted id, so an unlisted id that happens to
// start with a line's character takes that line's attributes.
func Lookup(id string) (Route, bool) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return Unknown, false
	}
	if r, ok := byID[id]; ok {
		return r, true
	}
	if r, ok := byID[id[:1]]; ok {
		return r, true
	}
	return Unknown, false
}

func (r Route) attrs() attrs {
	if r < 0 || int(r) >= len(table) {
		return table[Unknown]
	}
	return table[r]
}

// String returns the canonical route id, or "unknown".
func (r Route) String() string {
	if r == Unknown {
		return "unknown"
	}
	return r.attrs().id
}

// Color is the route's hex display color.
func (r Route) Color() string {
	return r.attrs().color
}

// TrackKey is the uppercase key of the route's geometry.
func (r Route) TrackKey() string {
	return r.attrs().trackKey
}
