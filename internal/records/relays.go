package records

import "github.com/dbsmedya/swimrecords/internal/types"

// RelayLeg locates a performance inside a relay.
type RelayLeg struct {
	Relay types.Relay `json:"relay"`
	Leg   int         `json:"leg"` // 1-based
}

// RelayIndex maps leg performance ids to the relay that contains them.
// Record derivation never consults it; it only lets reports show relay splits
// together with their relay.
type RelayIndex map[int64]RelayLeg

// NewRelayIndex indexes every leg of every relay. A zero leg id is skipped.
func NewRelayIndex(relays []types.Relay) RelayIndex {
	idx := make(RelayIndex, len(relays)*types.RelayLegs)
	for _, r := range relays {
		for i, id := range r.LegIDs {
			if id == 0 {
				continue
			}
			idx[id] = RelayLeg{Relay: r, Leg: i + 1}
		}
	}
	return idx
}

// Lookup returns the relay containing the performance.
func (idx RelayIndex) Lookup(performanceID int64) (RelayLeg, bool) {
	leg, ok := idx[performanceID]
	return leg, ok
}
