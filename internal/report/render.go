package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gookit/color"

	"github.com/dbsmedya/swimrecords/internal/records"
	"github.com/dbsmedya/swimrecords/internal/types"
)

// Badge styles.
var (
	styleSR     = color.New(color.FgYellow, color.OpBold)
	stylePR     = color.New(color.FgGreen, color.OpBold)
	styleFormer = color.New(color.FgGray)
	styleTitle  = color.New(color.FgCyan, color.OpBold)
)

// Renderer writes views as aligned text tables.
type Renderer struct {
	out      io.Writer
	useColor bool
}

// NewRenderer creates a renderer. Color is only emitted when useColor is set.
func NewRenderer(out io.Writer, useColor bool) *Renderer {
	return &Renderer{out: out, useColor: useColor}
}

func (r *Renderer) title(format string, args ...interface{}) error {
	text := fmt.Sprintf(format, args...)
	if r.useColor {
		text = styleTitle.Sprint(text)
	}
	_, err := fmt.Fprintf(r.out, "%s\n\n", text)
	return err
}

// SchoolRecords renders the record board.
func (r *Renderer) SchoolRecords(v RecordsView) error {
	if err := r.title("School Records"); err != nil {
		return err
	}
	if len(v.Records) == 0 {
		_, err := fmt.Fprintln(r.out, "No records yet.")
		return err
	}

	t := newTable("EVENT", "SWIMMER", "TIME", "DATE", "MEET", "BROKEN")
	for _, s := range v.Records {
		t.add(
			plain(s.Lineage.Label()),
			plain(s.Swimmer),
			cell{text: types.FormatSwimTime(s.Performance.Time), style: styleSR},
			plain(types.FormatMeetDate(s.Performance.MeetDate)),
			plain(v.Meets[s.Performance.MeetID]),
			plain(timesLabel(len(s.History))),
		)
	}
	return t.write(r.out, r.useColor)
}

// Meet renders every swim at a meet.
func (r *Renderer) Meet(v MeetView) error {
	if err := r.title("%s, %s (%s)", v.Meet.Name, types.FormatMeetDate(v.Meet.Date), v.Meet.Location); err != nil {
		return err
	}
	t := newTable("EVENT", "SWIMMER", "TIME", "START", "RECORDS", "RELAY")
	for _, row := range v.Rows {
		p := row.Performance
		t.add(
			plain(p.Event.Label()),
			plain(p.SwimmerName),
			plain(types.FormatSwimTime(p.Time)),
			plain(string(p.StartKind)),
			badges(row.Annotation),
			plain(relayLabel(row.Relay)),
		)
	}
	return t.write(r.out, r.useColor)
}

// Swimmer renders a swimmer's bests followed by their swims.
func (r *Renderer) Swimmer(v SwimmerView) error {
	if err := r.title("%s %s", v.Swimmer.Name, v.Swimmer.ClassLabel()); err != nil {
		return err
	}

	bests := newTable("EVENT", "BEST", "DATE", "PR HISTORY")
	for _, s := range v.Bests {
		bests.add(
			plain(s.Lineage.Label()),
			cell{text: types.FormatSwimTime(s.Performance.Time), style: stylePR},
			plain(types.FormatMeetDate(s.Performance.MeetDate)),
			plain(historyLabel(s.History)),
		)
	}
	if err := bests.write(r.out, r.useColor); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(r.out); err != nil {
		return err
	}

	swims := newTable("DATE", "EVENT", "TIME", "RECORDS", "RELAY")
	for _, row := range v.Rows {
		p := row.Performance
		swims.add(
			plain(types.FormatMeetDate(p.MeetDate)),
			plain(records.SchoolKey(p).Label()),
			plain(types.FormatSwimTime(p.Time)),
			badges(row.Annotation),
			plain(relayLabel(row.Relay)),
		)
	}
	return swims.write(r.out, r.useColor)
}

// badges summarizes an annotation. Several badges share one cell, so the
// cell takes the style of the most significant one.
func badges(a records.Annotation) cell {
	var parts []string
	var style color.Style

	if a.CurrentSR != nil {
		parts = append(parts, "SR "+improvementLabel(a.CurrentSR.Improvement))
		style = styleSR
	}
	if a.CurrentPR != nil {
		parts = append(parts, "PR "+improvementLabel(a.CurrentPR.Improvement))
		if style == nil {
			style = stylePR
		}
	}
	for _, prev := range a.PreviousSR {
		parts = append(parts, "ex-SR until "+types.FormatMeetDate(prev.SupersededOn))
	}
	for _, prev := range a.PreviousPR {
		parts = append(parts, "ex-PR until "+types.FormatMeetDate(prev.SupersededOn))
	}
	if style == nil && len(parts) > 0 {
		style = styleFormer
	}
	return cell{text: strings.Join(parts, ", "), style: style}
}

func improvementLabel(imp *float64) string {
	if imp == nil {
		return "(first swim)"
	}
	return "(-" + strconv.FormatFloat(*imp, 'f', 2, 64) + "s)"
}

func relayLabel(leg *records.RelayLeg) string {
	if leg == nil {
		return ""
	}
	return fmt.Sprintf("%s leg %d (%s)", leg.Relay.Type.Label(), leg.Leg, types.FormatSwimTime(leg.Relay.Time))
}

func historyLabel(seq []records.RecordPoint) string {
	times := make([]string, len(seq))
	for i, pt := range seq {
		times[i] = types.FormatSwimTime(pt.Time)
	}
	return strings.Join(times, " → ")
}

func timesLabel(n int) string {
	if n == 1 {
		return "1 time"
	}
	return fmt.Sprintf("%d times", n)
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
