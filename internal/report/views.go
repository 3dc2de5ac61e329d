// Package report builds the meet, swimmer and school-record views and renders
// them as terminal tables or JSON.
package report

import (
	"fmt"
	"sort"

	"github.com/dbsmedya/swimrecords/internal/records"
	"github.com/dbsmedya/swimrecords/internal/types"
)

// Row is one performance with its record status.
type Row struct {
	Performance types.Performance  `json:"performance"`
	Annotation  records.Annotation `json:"annotation"`
	Relay       *records.RelayLeg  `json:"relay,omitempty"`
}

// MeetView lists every swim at a meet.
type MeetView struct {
	Meet types.Meet `json:"meet"`
	Rows []Row      `json:"rows"`
}

// SwimmerView lists a swimmer's standing bests and full history.
type SwimmerView struct {
	Swimmer types.Swimmer      `json:"swimmer"`
	Bests   []records.Standing `json:"bests"`
	Rows    []Row              `json:"rows"`
}

// RecordsView is the school record board.
type RecordsView struct {
	Records []records.Standing `json:"records"`
	Meets   map[int64]string   `json:"-"`
}

// Inputs bundles what every view is built from.
type Inputs struct {
	Dataset *types.Dataset
	Book    *records.Book
	Relays  records.RelayIndex
}

// NewInputs computes the book and relay index for ds.
func NewInputs(ds *types.Dataset) Inputs {
	return Inputs{
		Dataset: ds,
		Book:    records.Compute(ds.Performances),
		Relays:  records.NewRelayIndex(ds.Relays),
	}
}

// BuildRecords returns the current school records.
func BuildRecords(in Inputs) RecordsView {
	meets := make(map[int64]string, len(in.Dataset.Meets))
	for _, m := range in.Dataset.Meets {
		meets[m.ID] = m.Name
	}
	return RecordsView{Records: in.Book.CurrentSchoolRecords(), Meets: meets}
}

// BuildMeet returns every swim at the meet ordered by event, then time.
func BuildMeet(in Inputs, meetID int64) (MeetView, error) {
	meet, ok := in.Dataset.MeetByID(meetID)
	if !ok {
		return MeetView{}, fmt.Errorf("no meet with id %d", meetID)
	}
	rows := in.rows(in.Dataset.PerformancesAt(meetID))
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Performance, rows[j].Performance
		if a.Event != b.Event {
			return eventLess(a.Event, b.Event)
		}
		return a.Time < b.Time
	})
	return MeetView{Meet: meet, Rows: rows}, nil
}

// BuildSwimmer returns the swimmer's bests and swims, newest first.
func BuildSwimmer(in Inputs, name string) (SwimmerView, error) {
	var swimmer types.Swimmer
	found := false
	for _, s := range in.Dataset.Swimmers {
		if s.Name == name {
			swimmer, found = s, true
			break
		}
	}
	if !found {
		return SwimmerView{}, fmt.Errorf("no swimmer named %q", name)
	}

	rows := in.rows(in.Dataset.PerformancesBy(name))
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Performance, rows[j].Performance
		if a.MeetDate != b.MeetDate {
			return a.MeetDate > b.MeetDate
		}
		return eventLess(a.Event, b.Event)
	})
	return SwimmerView{Swimmer: swimmer, Bests: in.Book.PersonalBests(name), Rows: rows}, nil
}

func (in Inputs) rows(perfs []types.Performance) []Row {
	rows := make([]Row, 0, len(perfs))
	for _, p := range perfs {
		row := Row{Performance: p}
		if ann, ok := in.Book.Annotation(p.ID); ok {
			row.Annotation = ann
		}
		if leg, ok := in.Relays.Lookup(p.ID); ok {
			leg := leg
			row.Relay = &leg
		}
		rows = append(rows, row)
	}
	return rows
}

func eventLess(a, b types.Event) bool {
	oa, ob := a.Order(), b.Order()
	switch {
	case oa == ob:
		return a < b
	case oa < 0:
		return false
	case ob < 0:
		return true
	default:
		return oa < ob
	}
}
