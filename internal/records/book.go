package records

import (
	"sort"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/swimrecords/internal/types"
)

// Book is the result of one record computation over a full set of performances.
type Book struct {
	School   *orderedmap.OrderedMap[LineageKey, []RecordPoint]
	Personal *orderedmap.OrderedMap[PersonalKey, []RecordPoint]

	annotations  map[int64]*Annotation
	performances map[int64]types.Performance
}

// Compute groups, sequences and annotates perfs. It is total over any input,
// including an empty slice, and does not retain perfs.
func Compute(perfs []types.Performance) *Book {
	school := SequenceAll(GroupSchool(perfs))
	personal := SequenceAll(GroupPersonal(perfs))

	a := newAnnotator()
	annotateAll(a, school, kindSchool)
	annotateAll(a, personal, kindPersonal)

	byID := make(map[int64]types.Performance, len(perfs))
	for _, p := range perfs {
		byID[p.ID] = p
	}

	return &Book{
		School:       school,
		Personal:     personal,
		annotations:  a.byID,
		performances: byID,
	}
}

// Annotation returns the record status of a performance. ok is false for
// performances that are not and never were a record point.
func (b *Book) Annotation(id int64) (Annotation, bool) {
	ann, ok := b.annotations[id]
	if !ok {
		return Annotation{}, false
	}
	return *ann, true
}

// Annotations returns a copy of every non-empty annotation keyed by performance id.
func (b *Book) Annotations() map[int64]Annotation {
	out := make(map[int64]Annotation, len(b.annotations))
	for id, ann := range b.annotations {
		out[id] = *ann
	}
	return out
}

// Performance returns the input performance with the given id.
func (b *Book) Performance(id int64) (types.Performance, bool) {
	p, ok := b.performances[id]
	return p, ok
}

// Standing is the current record of one lineage with its full history.
type Standing struct {
	Lineage     LineageKey        `json:"lineage"`
	Swimmer     string            `json:"swimmer"`
	Performance types.Performance `json:"performance"`
	History     []RecordPoint     `json:"history"`
}

// CurrentSchoolRecords returns the standing school record of every lineage,
// in event catalog order with unknown events last.
func (b *Book) CurrentSchoolRecords() []Standing {
	var out []Standing
	for el := b.School.Front(); el != nil; el = el.Next() {
		out = append(out, b.standing(el.Key, el.Value))
	}
	sortStandings(out)
	return out
}

// PersonalBests returns the standing personal records of one swimmer.
func (b *Book) PersonalBests(swimmer string) []Standing {
	var out []Standing
	for el := b.Personal.Front(); el != nil; el = el.Next() {
		if el.Key.Swimmer != swimmer {
			continue
		}
		out = append(out, b.standing(el.Key.Lineage, el.Value))
	}
	sortStandings(out)
	return out
}

func (b *Book) standing(key LineageKey, seq []RecordPoint) Standing {
	p := b.performances[seq[len(seq)-1].PerformanceID]
	return Standing{
		Lineage:     key,
		Swimmer:     p.SwimmerName,
		Performance: p,
		History:     seq,
	}
}

func sortStandings(s []Standing) {
	sort.SliceStable(s, func(i, j int) bool {
		return lineageLess(s[i].Lineage, s[j].Lineage)
	})
}

func lineageLess(a, b LineageKey) bool {
	oa, ob := a.Event.Order(), b.Event.Order()
	if oa != ob {
		switch {
		case oa < 0:
			return false
		case ob < 0:
			return true
		default:
			return oa < ob
		}
	}
	if a.Event != b.Event {
		return a.Event < b.Event
	}
	return a.Variant < b.Variant
}
