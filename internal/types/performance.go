// Package types contains the swim meet data model shared by the engine, the
// data sources and the importer.
package types

import (
	"fmt"
	"strings"
)

// SwimKind tells an individual swim apart from a relay split.
type SwimKind string

const (
	SwimIndividual SwimKind = "individual"
	SwimRelayLeg   SwimKind = "relay"
)

// Valid reports whether k is a known swim kind.
func (k SwimKind) Valid() bool {
	return k == SwimIndividual || k == SwimRelayLeg
}

// StartKind is how the swimmer left the block.
type StartKind string

const (
	StartFlat  StartKind = "flat"
	StartRelay StartKind = "relay"
)

// Valid reports whether k is a known start kind.
func (k StartKind) Valid() bool {
	return k == StartFlat || k == StartRelay
}

// Performance is one swimmer's time in one event at one meet.
type Performance struct {
	ID          int64     `json:"id"`
	SwimmerID   int64     `json:"swimmer_id"`
	SwimmerName string    `json:"swimmer_name"`
	MeetID      int64     `json:"meet_id"`
	MeetDate    int64     `json:"meet_date"` // Unix seconds
	Event       Event     `json:"event"`
	SwimKind    SwimKind  `json:"type"`
	StartKind   StartKind `json:"start_type"`
	Time        float64   `json:"time"` // seconds
}

// RelayStart reports whether the performance is a relay split swum off a relay exchange.
func (p Performance) RelayStart() bool {
	return p.SwimKind == SwimRelayLeg && p.StartKind == StartRelay
}

// Meet is a dated competition.
type Meet struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Date     int64  `json:"date"` // Unix seconds, midnight UTC
}

// Swimmer is a team member.
type Swimmer struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	GraduatingYear int    `json:"graduating_year"`
}

// ClassLabel renders the graduating year the way rosters do ("'27").
func (s Swimmer) ClassLabel() string {
	return fmt.Sprintf("'%02d", s.GraduatingYear%100)
}

// RelayType identifies a relay event.
type RelayType string

const (
	Relay200Medley RelayType = "200_mr"
	Relay200Free   RelayType = "200_fr"
	Relay400Free   RelayType = "400_fr"
)

// RelayLegs is the number of legs in every relay.
const RelayLegs = 4

// Label returns the display label for the relay type.
func (r RelayType) Label() string {
	switch r {
	case Relay200Medley:
		return "200 Medley Relay"
	case Relay200Free:
		return "200 Free Relay"
	case Relay400Free:
		return "400 Free Relay"
	default:
		return string(r)
	}
}

// LegEvent returns the event swum on the given 1-based leg.
func (r RelayType) LegEvent(leg int) (Event, bool) {
	if leg < 1 || leg > RelayLegs {
		return "", false
	}
	switch r {
	case Relay200Medley:
		return [...]Event{Event50Back, Event50Breast, Event50Fly, Event50Free}[leg-1], true
	case Relay200Free:
		return Event50Free, true
	case Relay400Free:
		return Event100Free, true
	default:
		return "", false
	}
}

// RelayTypeFromLabel parses relay labels such as "200 MR" or "400 Free Relay".
func RelayTypeFromLabel(s string) (RelayType, bool) {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "200 mr") || strings.Contains(s, "200 medley relay"):
		return Relay200Medley, true
	case strings.Contains(s, "200 fr") || strings.Contains(s, "200 free relay"):
		return Relay200Free, true
	case strings.Contains(s, "400 fr") || strings.Contains(s, "400 free relay"):
		return Relay400Free, true
	default:
		return "", false
	}
}

// Relay groups four leg performances into one relay result.
type Relay struct {
	ID     int64            `json:"id"`
	Type   RelayType        `json:"relay_type"`
	LegIDs [RelayLegs]int64 `json:"legs"`
	Time   float64          `json:"time"`
}
