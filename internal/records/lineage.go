// Package records derives personal and school records from a flat collection
// of swim performances.
//
// Performances are partitioned into lineages (per event-variant for school
// records, per swimmer and event-variant for personal records). Each lineage
// is walked in date order to find its record points, and the record points of
// both lineage kinds are merged back onto the performances as annotations.
//
// Everything here is a pure function of its input: every call builds fresh
// maps, nothing is cached between calls, and there is no I/O.
package records

import "github.com/dbsmedya/swimrecords/internal/types"

// Variant separates relay-start relay splits from every other swim of an event.
type Variant int

const (
	// VariantStandard covers individual swims and flat-start relay splits.
	VariantStandard Variant = iota
	// VariantRelayStart covers relay splits swum off a relay exchange.
	VariantRelayStart
)

// LineageKey identifies a school-record lineage.
type LineageKey struct {
	Event   types.Event
	Variant Variant
}

// String renders the key as "event" or "event|relay".
func (k LineageKey) String() string {
	if k.Variant == VariantRelayStart {
		return string(k.Event) + "|relay"
	}
	return string(k.Event)
}

// Label renders the key for humans ("50 Free", "50 Free (relay start)").
func (k LineageKey) Label() string {
	if k.Variant == VariantRelayStart {
		return k.Event.Label() + " (relay start)"
	}
	return k.Event.Label()
}

// PersonalKey identifies a personal-record lineage.
type PersonalKey struct {
	Swimmer string
	Lineage LineageKey
}

// SchoolKey returns the school-record lineage of a performance.
func SchoolKey(p types.Performance) LineageKey {
	key := LineageKey{Event: p.Event, Variant: VariantStandard}
	if p.RelayStart() {
		key.Variant = VariantRelayStart
	}
	return key
}

// PersonalKeyOf returns the personal-record lineage of a performance.
func PersonalKeyOf(p types.Performance) PersonalKey {
	return PersonalKey{Swimmer: p.SwimmerName, Lineage: SchoolKey(p)}
}

// MarshalText encodes the key in its String form.
func (k LineageKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
