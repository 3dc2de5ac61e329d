package records

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/swimrecords/internal/types"
)

func TestSequence(t *testing.T) {
	tests := []struct {
		name  string
		perfs []types.Performance
		want  []RecordPoint
	}{
		{
			name: "empty lineage",
			want: nil,
		},
		{
			name:  "single performance",
			perfs: []types.Performance{perf(1, "A", types.Event50Free, 1, 30)},
			want:  []RecordPoint{{Date: 1, PerformanceID: 1, Time: 30}},
		},
		{
			name: "later slower swim is ignored",
			perfs: []types.Performance{
				perf(1, "A", types.Event50Free, 1, 30),
				perf(2, "A", types.Event50Free, 2, 31),
			},
			want: []RecordPoint{{Date: 1, PerformanceID: 1, Time: 30}},
		},
		{
			name: "same-day faster swim replaces the earlier point",
			perfs: []types.Performance{
				perf(1, "A", types.Event50Free, 1, 30.0),
				perf(2, "A", types.Event50Free, 2, 29.5),
				perf(3, "A", types.Event50Free, 2, 29.0),
			},
			want: []RecordPoint{
				{Date: 1, PerformanceID: 1, Time: 30.0},
				{Date: 2, PerformanceID: 3, Time: 29.0},
			},
		},
		{
			name: "equal time does not set a new record",
			perfs: []types.Performance{
				perf(1, "A", types.Event50Free, 1, 30),
				perf(2, "A", types.Event50Free, 2, 30),
			},
			want: []RecordPoint{{Date: 1, PerformanceID: 1, Time: 30}},
		},
		{
			name: "input order is irrelevant",
			perfs: []types.Performance{
				perf(3, "A", types.Event50Free, 3, 28),
				perf(1, "A", types.Event50Free, 1, 30),
				perf(2, "A", types.Event50Free, 2, 29),
			},
			want: []RecordPoint{
				{Date: 1, PerformanceID: 1, Time: 30},
				{Date: 2, PerformanceID: 2, Time: 29},
				{Date: 3, PerformanceID: 3, Time: 28},
			},
		},
		{
			name: "first day with several swims keeps only the fastest",
			perfs: []types.Performance{
				perf(1, "A", types.Event50Free, 1, 31),
				perf(2, "A", types.Event50Free, 1, 30),
				perf(3, "A", types.Event50Free, 1, 29),
			},
			want: []RecordPoint{{Date: 1, PerformanceID: 3, Time: 29}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sequence(tt.perfs))
		})
	}
}

func TestSequence_DoesNotMutateInput(t *testing.T) {
	perfs := []types.Performance{
		perf(2, "A", types.Event50Free, 2, 29),
		perf(1, "A", types.Event50Free, 1, 30),
	}
	Sequence(perfs)
	assert.Equal(t, int64(2), perfs[0].ID)
	assert.Equal(t, int64(1), perfs[1].ID)
}

func TestSequence_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		perfs := randomLineage(rng, 40)
		points := Sequence(perfs)
		require.NotEmpty(t, points)

		seenDates := make(map[int64]bool)
		for i, p := range points {
			assert.False(t, seenDates[p.Date], "two record points on date %d", p.Date)
			seenDates[p.Date] = true
			if i > 0 {
				assert.Less(t, points[i-1].Date, p.Date, "dates must increase")
				assert.Less(t, p.Time, points[i-1].Time, "times must decrease")
			}
		}

		best := perfs[0].Time
		for _, p := range perfs {
			if p.Time < best {
				best = p.Time
			}
		}
		assert.Equal(t, best, points[len(points)-1].Time, "last point is the all-time best")

		shuffled := append([]types.Performance(nil), perfs...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, points, Sequence(shuffled), "sequence must not depend on input order")
	}
}

// randomLineage builds n performances spread over a handful of dates with
// deliberately repeated times.
func randomLineage(rng *rand.Rand, n int) []types.Performance {
	perfs := make([]types.Performance, n)
	for i := range perfs {
		date := int64(rng.Intn(8)) * 86400
		secs := 25 + float64(rng.Intn(40))/10
		perfs[i] = perf(int64(i+1), "A", types.Event50Free, date, secs)
	}
	return perfs
}

func TestSequenceAll_SkipsNothingAndKeepsOrder(t *testing.T) {
	perfs := []types.Performance{
		perf(1, "A", types.Event100Free, 1, 60),
		perf(2, "B", types.Event50Free, 1, 26),
		perf(3, "B", types.Event100Free, 2, 58),
	}
	seqs := SequenceAll(GroupSchool(perfs))
	require.Equal(t, 2, seqs.Len())
	assert.Equal(t, []LineageKey{{Event: types.Event100Free}, {Event: types.Event50Free}}, seqs.Keys())

	hundred, _ := seqs.Get(LineageKey{Event: types.Event100Free})
	assert.Len(t, hundred, 2)
}
