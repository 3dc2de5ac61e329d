package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventFromLabel(t *testing.T) {
	tests := []struct {
		input string
		want  Event
		ok    bool
	}{
		{"50 Free", Event50Free, true},
		{"Boys 100 Butterfly Varsity", Event100Fly, true},
		{"200 Individual Medley", Event200IM, true},
		{"500 Free", Event500Free, true},
		{"100 Back", Event100Back, true},
		{"1650 Free", "", false},
		{"250 Free", "", false},
		{"150 Back", "", false},
		{"50 Freestyle", Event50Free, true},
		{"100 Backstroke", Event100Back, true},
		{"50 Freestyles", "", false},
		{"Girls 1650 Free then 50 Free", Event50Free, true},
		{"50 Free Relay leadoff", Event50Free, true},
		{"(100 Fly)", Event100Fly, true},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := EventFromLabel(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvent_LabelAndOrder(t *testing.T) {
	assert.Equal(t, "200 IM", Event200IM.Label())
	assert.Equal(t, "400_im", Event("400_im").Label(), "unknown events render their code")
	assert.True(t, Event50Free.Known())
	assert.False(t, Event("400_im").Known())
	assert.Equal(t, 0, Event50Free.Order())
	assert.Equal(t, -1, Event("400_im").Order())
}

func TestRelayType_LegEvent(t *testing.T) {
	medley := []Event{Event50Back, Event50Breast, Event50Fly, Event50Free}
	for leg := 1; leg <= RelayLegs; leg++ {
		got, ok := Relay200Medley.LegEvent(leg)
		require.True(t, ok)
		assert.Equal(t, medley[leg-1], got, "medley leg %d", leg)

		got, ok = Relay200Free.LegEvent(leg)
		require.True(t, ok)
		assert.Equal(t, Event50Free, got)

		got, ok = Relay400Free.LegEvent(leg)
		require.True(t, ok)
		assert.Equal(t, Event100Free, got)
	}

	_, ok := Relay200Medley.LegEvent(0)
	assert.False(t, ok)
	_, ok = Relay200Medley.LegEvent(5)
	assert.False(t, ok)
	_, ok = RelayType("800_fr").LegEvent(1)
	assert.False(t, ok)
}

func TestRelayTypeFromLabel(t *testing.T) {
	tests := []struct {
		input string
		want  RelayType
		ok    bool
	}{
		{"200 MR", Relay200Medley, true},
		{"Girls 200 Medley Relay", Relay200Medley, true},
		{"200 FR", Relay200Free, true},
		{"400 Free Relay", Relay400Free, true},
		{"800 Free Relay", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := RelayTypeFromLabel(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPerformance_RelayStart(t *testing.T) {
	assert.True(t, Performance{SwimKind: SwimRelayLeg, StartKind: StartRelay}.RelayStart())
	assert.False(t, Performance{SwimKind: SwimRelayLeg, StartKind: StartFlat}.RelayStart())
	assert.False(t, Performance{SwimKind: SwimIndividual, StartKind: StartRelay}.RelayStart())
}

func TestFormatSwimTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{23.45, "23.45s"},
		{9.5, "09.50s"},
		{65.3, "1:05.30"},
		{59.999, "1:00.00"},
		{305.12, "5:05.12"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.seconds), func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSwimTime(tt.seconds))
		})
	}
}

func TestParseSwimTime(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"23.45", 23.45, false},
		{"1:05.30", 65.30, false},
		{" 5:05.12 ", 305.12, false},
		{"1:02:03.00", 0, true},
		{"abc", 0, true},
		{"x:10.00", 0, true},
		{"0", 0, true},
		{"-3.2", 0, true},
		{"0:59.99", 59.99, false},
		{"2:00", 120, false},
		{"-1:70", 0, true},
		{"-0:30.00", 0, true},
		{"1:-5.00", 0, true},
		{"0:75.5", 0, true},
		{"1:60.00", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseSwimTime(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestFormatMeetDate(t *testing.T) {
	assert.Equal(t, "", FormatMeetDate(0))
	assert.Equal(t, "Mar 14, 2024", FormatMeetDate(1710374400))

	secs, err := MeetDateFromDay("2024-03-14")
	require.NoError(t, err)
	assert.Equal(t, int64(1710374400), secs)

	_, err = MeetDateFromDay("14/03/2024")
	assert.Error(t, err)
}

func TestError_Kinds(t *testing.T) {
	base := errors.New("connection refused")
	err := fmt.Errorf("loading meets: %w", NewError(KindTransport, "GET /meets", base))

	assert.True(t, IsKind(err, KindTransport))
	assert.False(t, IsKind(err, KindMalformedResponse))
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), "transport")
	assert.False(t, IsKind(base, KindTransport))

	assert.Equal(t, "malformed_input", KindMalformedInput.String())
	assert.Equal(t, "storage", KindStorage.String())
	assert.Equal(t, "unknown", ErrorKind(0).String())
}

func TestDataset_Lookups(t *testing.T) {
	ds := &Dataset{
		Meets:    []Meet{{ID: 1, Name: "League Finals"}},
		Swimmers: []Swimmer{{ID: 7, Name: "Avery Chen", GraduatingYear: 2027}},
		Performances: []Performance{
			{ID: 1, MeetID: 1, SwimmerName: "Avery Chen"},
			{ID: 2, MeetID: 2, SwimmerName: "Sam Ortiz"},
			{ID: 3, MeetID: 1, SwimmerName: "Sam Ortiz"},
		},
	}

	m, ok := ds.MeetByID(1)
	assert.True(t, ok)
	assert.Equal(t, "League Finals", m.Name)
	_, ok = ds.MeetByID(9)
	assert.False(t, ok)

	s, ok := ds.SwimmerByID(7)
	assert.True(t, ok)
	assert.Equal(t, "'27", s.ClassLabel())

	assert.Len(t, ds.PerformancesAt(1), 2)
	assert.Len(t, ds.PerformancesBy("Sam Ortiz"), 2)
}
