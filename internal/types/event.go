package types

import "strings"

// Event is a swim event code such as "50_free" or "200_im".
type Event string

// Individual events tracked by the team.
const (
	Event50Free    Event = "50_free"
	Event50Back    Event = "50_back"
	Event50Breast  Event = "50_breast"
	Event50Fly     Event = "50_fly"
	Event100Free   Event = "100_free"
	Event100Back   Event = "100_back"
	Event100Breast Event = "100_breast"
	Event100Fly    Event = "100_fly"
	Event200Free   Event = "200_free"
	Event200IM     Event = "200_im"
	Event500Free   Event = "500_free"
)

// EventInfo describes an event as it appears on meet results.
type EventInfo struct {
	Code       Event
	Label      string
	Alternates []string
}

// Events is the event catalog in display order.
var Events = []EventInfo{
	{Code: Event50Free, Label: "50 Free", Alternates: []string{"50 Freestyle"}},
	{Code: Event50Back, Label: "50 Back", Alternates: []string{"50 Backstroke"}},
	{Code: Event50Breast, Label: "50 Breast", Alternates: []string{"50 Breaststroke"}},
	{Code: Event50Fly, Label: "50 Fly", Alternates: []string{"50 Butterfly"}},
	{Code: Event100Free, Label: "100 Free", Alternates: []string{"100 Freestyle"}},
	{Code: Event100Back, Label: "100 Back", Alternates: []string{"100 Backstroke"}},
	{Code: Event100Breast, Label: "100 Breast", Alternates: []string{"100 Breaststroke"}},
	{Code: Event100Fly, Label: "100 Fly", Alternates: []string{"100 Butterfly"}},
	{Code: Event200Free, Label: "200 Free", Alternates: []string{"200 Freestyle"}},
	{Code: Event200IM, Label: "200 IM", Alternates: []string{"200 Individual Medley"}},
	{Code: Event500Free, Label: "500 Free", Alternates: []string{"500 Freestyle"}},
}

// Label returns the display label, or the raw code for events outside the catalog.
func (e Event) Label() string {
	for _, info := range Events {
		if info.Code == e {
			return info.Label
		}
	}
	return string(e)
}

// Known reports whether the event is in the catalog.
func (e Event) Known() bool {
	return e.Order() >= 0
}

// Order returns the catalog position of the event, or -1 when unknown.
func (e Event) Order() int {
	for i, info := range Events {
		if info.Code == e {
			return i
		}
	}
	return -1
}

// EventFromLabel finds the first catalog event whose label or alternate label
// appears in s as a whole token. Result sheets carry extra text ("Boys 50 Free
// Varsity"), so the label may sit anywhere in s, but "1650 Free" is not "50 Free".
func EventFromLabel(s string) (Event, bool) {
	for _, info := range Events {
		if containsLabel(s, info.Label) {
			return info.Code, true
		}
		for _, alt := range info.Alternates {
			if containsLabel(s, alt) {
				return info.Code, true
			}
		}
	}
	return "", false
}

// containsLabel reports whether label occurs in s with no digit directly
// before it and no letter or digit directly after it.
func containsLabel(s, label string) bool {
	if label == "" {
		return false
	}
	for from := 0; from <= len(s)-len(label); {
		i := strings.Index(s[from:], label)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(label)
		before := start == 0 || !isDigit(s[start-1])
		after := end == len(s) || !isAlnum(s[end])
		if before && after {
			return true
		}
		from = start + 1
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlnum(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
