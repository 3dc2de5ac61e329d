package source

import (
	"fmt"

	"github.com/dbsmedya/swimrecords/internal/types"
)

// Validate checks the shape of every item and fills in each performance's
// swimmer name and meet date from the swimmers and meets lists when the
// payload left them out. Unknown event codes pass through untouched.
func Validate(ds *types.Dataset) error {
	swimmers := make(map[int64]types.Swimmer, len(ds.Swimmers))
	for i, s := range ds.Swimmers {
		if s.ID <= 0 {
			return malformed("swimmers", i, "id", "must be positive")
		}
		if s.Name == "" {
			return malformed("swimmers", i, "name", "is required")
		}
		swimmers[s.ID] = s
	}

	meets := make(map[int64]types.Meet, len(ds.Meets))
	for i, m := range ds.Meets {
		if m.ID <= 0 {
			return malformed("meets", i, "id", "must be positive")
		}
		if m.Date <= 0 {
			return malformed("meets", i, "date", "must be a positive unix timestamp")
		}
		meets[m.ID] = m
	}

	for i := range ds.Performances {
		p := &ds.Performances[i]
		switch {
		case p.ID <= 0:
			return malformed("records", i, "id", "must be positive")
		case p.Event == "":
			return malformed("records", i, "event", "is required")
		case !p.SwimKind.Valid():
			return malformed("records", i, "type", fmt.Sprintf("unknown swim kind %q", p.SwimKind))
		case !p.StartKind.Valid():
			return malformed("records", i, "start_type", fmt.Sprintf("unknown start kind %q", p.StartKind))
		case !(p.Time > 0):
			return malformed("records", i, "time", "must be positive")
		}

		if p.SwimmerName == "" {
			s, ok := swimmers[p.SwimmerID]
			if !ok {
				return malformed("records", i, "swimmer_id", fmt.Sprintf("no swimmer with id %d", p.SwimmerID))
			}
			p.SwimmerName = s.Name
		}
		if p.MeetDate == 0 {
			m, ok := meets[p.MeetID]
			if !ok {
				return malformed("records", i, "meet_id", fmt.Sprintf("no meet with id %d", p.MeetID))
			}
			p.MeetDate = m.Date
		}
	}

	for i, r := range ds.Relays {
		if r.ID <= 0 {
			return malformed("relays", i, "id", "must be positive")
		}
		if _, ok := r.Type.LegEvent(1); !ok {
			return malformed("relays", i, "relay_type", fmt.Sprintf("unknown relay type %q", r.Type))
		}
		if !(r.Time > 0) {
			return malformed("relays", i, "time", "must be positive")
		}
	}

	return nil
}

func malformed(collection string, index int, field, msg string) error {
	return types.NewError(types.KindMalformedResponse, "source.Validate",
		fmt.Errorf("%s[%d].%s %s", collection, index, field, msg))
}
