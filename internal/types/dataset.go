package types

import "time"

// Dataset is everything the record engine and the reports need from one fetch.
type Dataset struct {
	Performances []Performance
	Meets        []Meet
	Swimmers     []Swimmer
	Relays       []Relay
	Stats        LoadStats
}

// LoadStats contains statistics about loading a dataset.
type LoadStats struct {
	Source   string        // Name of the source that produced the dataset
	Duration time.Duration // Time taken to load
}

// MeetByID returns the meet with the given id.
func (d *Dataset) MeetByID(id int64) (Meet, bool) {
	for _, m := range d.Meets {
		if m.ID == id {
			return m, true
		}
	}
	return Meet{}, false
}

// SwimmerByID returns the swimmer with the given id.
func (d *Dataset) SwimmerByID(id int64) (Swimmer, bool) {
	for _, s := range d.Swimmers {
		if s.ID == id {
			return s, true
		}
	}
	return Swimmer{}, false
}

// PerformancesAt returns the performances swum at a meet, in dataset order.
func (d *Dataset) PerformancesAt(meetID int64) []Performance {
	var out []Performance
	for _, p := range d.Performances {
		if p.MeetID == meetID {
			out = append(out, p)
		}
	}
	return out
}

// PerformancesBy returns the performances of the named swimmer, in dataset order.
func (d *Dataset) PerformancesBy(swimmerName string) []Performance {
	var out []Performance
	for _, p := range d.Performances {
		if p.SwimmerName == swimmerName {
			out = append(out, p)
		}
	}
	return out
}
