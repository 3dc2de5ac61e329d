package records

import (
	"sort"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/swimrecords/internal/types"
)

// RecordPoint is a performance that was the best time in its lineage as of
// its date.
type RecordPoint struct {
	Date          int64   `json:"date"`
	PerformanceID int64   `json:"performance_id"`
	Time          float64 `json:"time"`
}

// Sequence walks one lineage in date order and returns its record points,
// oldest first. The last point is the standing record.
//
// Only the fastest swim of a day can be that day's record point: when a new
// best lands on the same date as the previous point, the previous point is
// dropped. Swims equal to or slower than the running best are ignored.
func Sequence(perfs []types.Performance) []RecordPoint {
	if len(perfs) == 0 {
		return nil
	}

	sorted := make([]types.Performance, len(perfs))
	copy(sorted, perfs)
	// Ties on date are ordered by id so the result does not depend on input order.
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].MeetDate != sorted[j].MeetDate {
			return sorted[i].MeetDate < sorted[j].MeetDate
		}
		return sorted[i].ID < sorted[j].ID
	})

	var points []RecordPoint
	for _, p := range sorted {
		if len(points) > 0 && p.Time >= points[len(points)-1].Time {
			continue
		}
		points = append(points, RecordPoint{Date: p.MeetDate, PerformanceID: p.ID, Time: p.Time})

		n := len(points)
		if n >= 2 && points[n-2].Date == points[n-1].Date {
			points = append(points[:n-2], points[n-1])
		}
	}
	return points
}

// SequenceAll runs Sequence over every lineage, keeping lineage order.
// Empty lineages are omitted.
func SequenceAll[K comparable](lineages *orderedmap.OrderedMap[K, []types.Performance]) *orderedmap.OrderedMap[K, []RecordPoint] {
	out := orderedmap.NewOrderedMap[K, []RecordPoint]()
	for el := lineages.Front(); el != nil; el = el.Next() {
		if points := Sequence(el.Value); len(points) > 0 {
			out.Set(el.Key, points)
		}
	}
	return out
}
