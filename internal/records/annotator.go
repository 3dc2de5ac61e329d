package records

import "github.com/elliotchance/orderedmap/v2"

// Current marks the standing record of a lineage. Improvement is the time
// saved over the record it replaced; nil means it was the first time swum.
type Current struct {
	Improvement *float64 `json:"improvement"`
}

// Previous marks a record point that was later beaten.
type Previous struct {
	Improvement  *float64 `json:"improvement"`
	SupersededOn int64    `json:"superseded_on"`
}

// Annotation is the record status of one performance. SR and PR fields come
// from independent lineages and never influence each other.
type Annotation struct {
	CurrentSR  *Current   `json:"current_sr,omitempty"`
	PreviousSR []Previous `json:"previous_sr,omitempty"`
	CurrentPR  *Current   `json:"current_pr,omitempty"`
	PreviousPR []Previous `json:"previous_pr,omitempty"`
}

// IsRecord reports whether the performance is or was a record of either kind.
func (a Annotation) IsRecord() bool {
	return a.CurrentSR != nil || a.CurrentPR != nil || len(a.PreviousSR) > 0 || len(a.PreviousPR) > 0
}

type recordKind int

const (
	kindSchool recordKind = iota
	kindPersonal
)

// annotator accumulates annotations for one Compute call.
type annotator struct {
	byID map[int64]*Annotation
}

func newAnnotator() *annotator {
	return &annotator{byID: make(map[int64]*Annotation)}
}

func (a *annotator) entry(id int64) *Annotation {
	ann, ok := a.byID[id]
	if !ok {
		ann = &Annotation{}
		a.byID[id] = ann
	}
	return ann
}

// lineage annotates the record points of one lineage, oldest first.
func (a *annotator) lineage(seq []RecordPoint, kind recordKind) {
	n := len(seq)
	if n == 0 {
		return
	}

	current := &Current{}
	if n >= 2 {
		current.Improvement = improvement(seq[n-2], seq[n-1])
	}
	last := a.entry(seq[n-1].PerformanceID)
	if kind == kindSchool {
		last.CurrentSR = current
	} else {
		last.CurrentPR = current
	}

	for i := 0; i < n-1; i++ {
		prev := Previous{SupersededOn: seq[i+1].Date}
		if i > 0 {
			prev.Improvement = improvement(seq[i-1], seq[i])
		}
		ann := a.entry(seq[i].PerformanceID)
		if kind == kindSchool {
			ann.PreviousSR = append(ann.PreviousSR, prev)
		} else {
			ann.PreviousPR = append(ann.PreviousPR, prev)
		}
	}
}

func improvement(before, after RecordPoint) *float64 {
	saved := before.Time - after.Time
	return &saved
}

// annotateAll annotates every lineage of one kind.
func annotateAll[K comparable](a *annotator, seqs *orderedmap.OrderedMap[K, []RecordPoint], kind recordKind) {
	for el := seqs.Front(); el != nil; el = el.Next() {
		a.lineage(el.Value, kind)
	}
}
