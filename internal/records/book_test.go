package records

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/swimrecords/internal/types"
)

func TestCompute_SameDaySupersession(t *testing.T) {
	perfs := []types.Performance{
		perf(1, "Avery", types.Event50Free, 1, 30.0),
		perf(2, "Avery", types.Event50Free, 2, 29.5),
		perf(3, "Avery", types.Event50Free, 2, 29.0),
	}
	book := Compute(perfs)

	first, ok := book.Annotation(1)
	require.True(t, ok)
	assert.Nil(t, first.CurrentSR)
	require.Len(t, first.PreviousSR, 1)
	assert.Nil(t, first.PreviousSR[0].Improvement)
	assert.Equal(t, int64(2), first.PreviousSR[0].SupersededOn)

	_, ok = book.Annotation(2)
	assert.False(t, ok, "the slower same-day swim is not a record point")

	best, ok := book.Annotation(3)
	require.True(t, ok)
	require.NotNil(t, best.CurrentSR)
	require.NotNil(t, best.CurrentSR.Improvement)
	assert.InDelta(t, 1.0, *best.CurrentSR.Improvement, 1e-9)
	assert.Empty(t, best.PreviousSR)

	// One swimmer, so the PR lineage mirrors the SR lineage.
	require.NotNil(t, best.CurrentPR)
	assert.InDelta(t, 1.0, *best.CurrentPR.Improvement, 1e-9)
	require.Len(t, first.PreviousPR, 1)
}

func TestCompute_SinglePerformance(t *testing.T) {
	book := Compute([]types.Performance{perf(1, "Avery", types.Event100Back, 10, 62.4)})

	ann, ok := book.Annotation(1)
	require.True(t, ok)
	require.NotNil(t, ann.CurrentSR)
	assert.Nil(t, ann.CurrentSR.Improvement, "first time swum")
	require.NotNil(t, ann.CurrentPR)
	assert.Nil(t, ann.CurrentPR.Improvement)
	assert.Empty(t, ann.PreviousSR)
	assert.Empty(t, ann.PreviousPR)
}

func TestCompute_LaterSlowerSwim(t *testing.T) {
	book := Compute([]types.Performance{
		perf(1, "Avery", types.Event50Fly, 1, 28),
		perf(2, "Avery", types.Event50Fly, 2, 29),
	})

	ann, ok := book.Annotation(1)
	require.True(t, ok)
	assert.NotNil(t, ann.CurrentSR)
	assert.NotNil(t, ann.CurrentPR)

	_, ok = book.Annotation(2)
	assert.False(t, ok)
}

func TestCompute_RelayStartIsSeparateLineage(t *testing.T) {
	individual := perf(1, "Avery", types.Event50Free, 1, 25.0)
	split := relaySplit(perf(2, "Avery", types.Event50Free, 2, 23.8), types.StartRelay)
	book := Compute([]types.Performance{individual, split})

	a1, ok := book.Annotation(1)
	require.True(t, ok)
	require.NotNil(t, a1.CurrentPR, "a faster relay-start split does not displace the flat-start PR")
	assert.Nil(t, a1.CurrentPR.Improvement)
	assert.Empty(t, a1.PreviousPR)
	require.NotNil(t, a1.CurrentSR)

	a2, ok := book.Annotation(2)
	require.True(t, ok)
	require.NotNil(t, a2.CurrentPR)
	assert.Nil(t, a2.CurrentPR.Improvement)

	assert.Equal(t, 2, book.School.Len())
	_, ok = book.School.Get(LineageKey{Event: types.Event50Free, Variant: VariantRelayStart})
	assert.True(t, ok)
}

func TestCompute_SchoolAndPersonalAreIndependent(t *testing.T) {
	perfs := []types.Performance{
		perf(1, "Avery", types.Event50Free, 1, 25.0),
		perf(2, "Sam", types.Event50Free, 2, 26.0),
		perf(3, "Sam", types.Event50Free, 3, 25.5),
		perf(4, "Sam", types.Event50Free, 4, 24.5),
	}
	book := Compute(perfs)

	avery, _ := book.Annotation(1)
	assert.Nil(t, avery.CurrentSR)
	require.Len(t, avery.PreviousSR, 1)
	assert.Equal(t, int64(4), avery.PreviousSR[0].SupersededOn)
	assert.NotNil(t, avery.CurrentPR)

	sam2, _ := book.Annotation(2)
	assert.Nil(t, sam2.CurrentSR)
	assert.Empty(t, sam2.PreviousSR, "never the school best")
	require.Len(t, sam2.PreviousPR, 1)
	assert.Nil(t, sam2.PreviousPR[0].Improvement)
	assert.Equal(t, int64(3), sam2.PreviousPR[0].SupersededOn)

	sam3, _ := book.Annotation(3)
	require.Len(t, sam3.PreviousPR, 1)
	assert.InDelta(t, 0.5, *sam3.PreviousPR[0].Improvement, 1e-9)
	assert.Equal(t, int64(4), sam3.PreviousPR[0].SupersededOn)

	sam4, _ := book.Annotation(4)
	require.NotNil(t, sam4.CurrentSR)
	assert.InDelta(t, 0.5, *sam4.CurrentSR.Improvement, 1e-9)
	require.NotNil(t, sam4.CurrentPR)
	assert.InDelta(t, 1.0, *sam4.CurrentPR.Improvement, 1e-9)
	assert.True(t, sam4.IsRecord())
}

func TestCompute_Empty(t *testing.T) {
	book := Compute(nil)
	assert.Empty(t, book.Annotations())
	assert.Empty(t, book.CurrentSchoolRecords())
	assert.Equal(t, 0, book.School.Len())
	assert.Equal(t, 0, book.Personal.Len())
}

func TestCompute_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	swimmers := []string{"Avery", "Sam", "Jordan"}
	events := []types.Event{types.Event50Free, types.Event100Free, types.Event50Back}

	var perfs []types.Performance
	for i := 1; i <= 300; i++ {
		p := perf(int64(i), swimmers[rng.Intn(len(swimmers))], events[rng.Intn(len(events))],
			int64(rng.Intn(12))*86400, 25+float64(rng.Intn(200))/10)
		if rng.Intn(4) == 0 {
			p = relaySplit(p, types.StartRelay)
		}
		perfs = append(perfs, p)
	}

	book := Compute(perfs)
	anns := book.Annotations()

	currentSR := make(map[LineageKey]int)
	currentPR := make(map[PersonalKey]int)
	for id, ann := range anns {
		p, ok := book.Performance(id)
		require.True(t, ok)
		if ann.CurrentSR != nil {
			currentSR[SchoolKey(p)]++
			assertNonNegative(t, ann.CurrentSR.Improvement)
		}
		if ann.CurrentPR != nil {
			currentPR[PersonalKeyOf(p)]++
			assertNonNegative(t, ann.CurrentPR.Improvement)
		}
		for _, prev := range append(ann.PreviousSR, ann.PreviousPR...) {
			assertNonNegative(t, prev.Improvement)
			assert.Greater(t, prev.SupersededOn, p.MeetDate)
		}
		assert.LessOrEqual(t, len(ann.PreviousSR), 1)
		assert.LessOrEqual(t, len(ann.PreviousPR), 1)
	}

	assert.Equal(t, book.School.Len(), len(currentSR))
	for key, n := range currentSR {
		assert.Equal(t, 1, n, "lineage %s has %d current school records", key, n)
	}
	assert.Equal(t, book.Personal.Len(), len(currentPR))
	for key, n := range currentPR {
		assert.Equal(t, 1, n, "lineage %v has %d current personal records", key, n)
	}

	reversed := make([]types.Performance, len(perfs))
	for i, p := range perfs {
		reversed[len(perfs)-1-i] = p
	}
	assert.Equal(t, anns, Compute(reversed).Annotations(), "annotations must not depend on input order")
}

func assertNonNegative(t *testing.T, v *float64) {
	t.Helper()
	if v != nil {
		assert.Greater(t, *v, 0.0)
	}
}

func TestBook_Standings(t *testing.T) {
	perfs := []types.Performance{
		perf(1, "Sam", "1650_free", 1, 1100),
		perf(2, "Avery", types.Event100Free, 1, 55),
		relaySplit(perf(3, "Avery", types.Event50Free, 1, 23.9), types.StartRelay),
		perf(4, "Sam", types.Event50Free, 1, 25.1),
		perf(5, "Avery", types.Event50Free, 2, 24.8),
	}
	book := Compute(perfs)

	standings := book.CurrentSchoolRecords()
	require.Len(t, standings, 4)
	assert.Equal(t, "50_free", standings[0].Lineage.String())
	assert.Equal(t, "Avery", standings[0].Swimmer)
	assert.Equal(t, int64(5), standings[0].Performance.ID)
	assert.Len(t, standings[0].History, 2)
	assert.Equal(t, "50_free|relay", standings[1].Lineage.String())
	assert.Equal(t, "100_free", standings[2].Lineage.String())
	assert.Equal(t, "1650_free", standings[3].Lineage.String(), "unknown events sort last")

	bests := book.PersonalBests("Sam")
	require.Len(t, bests, 2)
	assert.Equal(t, int64(4), bests[0].Performance.ID)
	assert.Equal(t, int64(1), bests[1].Performance.ID)

	assert.Empty(t, book.PersonalBests("Nobody"))
}

func TestRelayIndex(t *testing.T) {
	relays := []types.Relay{
		{ID: 1, Type: types.Relay200Medley, LegIDs: [4]int64{10, 11, 12, 13}, Time: 110.2},
		{ID: 2, Type: types.Relay200Free, LegIDs: [4]int64{20, 0, 22, 23}, Time: 98.1},
	}
	idx := NewRelayIndex(relays)

	leg, ok := idx.Lookup(12)
	require.True(t, ok)
	assert.Equal(t, int64(1), leg.Relay.ID)
	assert.Equal(t, 3, leg.Leg)

	leg, ok = idx.Lookup(23)
	require.True(t, ok)
	assert.Equal(t, 4, leg.Leg)

	_, ok = idx.Lookup(0)
	assert.False(t, ok)
	_, ok = idx.Lookup(99)
	assert.False(t, ok)
}
