// Package importer bulk-loads meet results from CSV exports into the records
// database.
//
// The first row is a header. Every other row is either an individual swim or
// relay split (6 columns):
//
//	swimmer, meet, event, type, start, time
//
// or a relay result (9 columns) whose four legs must already be present as
// relay splits, either in the database or earlier in the same file:
//
//	swimmer 1, swimmer 2, swimmer 3, swimmer 4, meet, relay type, -, -, time
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dbsmedya/swimrecords/internal/types"
)

// Column counts of the two row shapes.
const (
	individualColumns = 6
	relayColumns      = 9
)

// RelayRow is a parsed relay result awaiting leg resolution.
type RelayRow struct {
	Line       int
	MeetID     int64
	Type       types.RelayType
	SwimmerIDs [types.RelayLegs]int64
	Time       float64
}

// Batch is the parsed content of one CSV file.
type Batch struct {
	Performances []types.Performance
	Lines        []int // source line of each performance
	Relays       []RelayRow
}

// RowError is a problem with one CSV row.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// RowErrors collects every failing row of an import.
type RowErrors []RowError

func (e RowErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("import rejected, %d invalid rows:\n  - %s", len(e), strings.Join(msgs, "\n  - "))
}

// Parse reads a CSV export and resolves swimmer and meet names against the
// known roster and meets. It returns every row problem at once, wrapped as a
// malformed-input error holding RowErrors; no partial batch is returned.
func Parse(r io.Reader, swimmers []types.Swimmer, meets []types.Meet) (*Batch, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, types.NewError(types.KindMalformedInput, "importer.Parse", fmt.Errorf("unreadable CSV: %w", err))
	}

	p := &parser{swimmers: swimmers, meets: meets}
	batch := &Batch{}
	var rowErrs RowErrors

	// Line numbers are 1-based and include the header.
	for i := 1; i < len(records); i++ {
		line := i + 1
		row := trimAll(records[i])

		switch n := len(row); {
		case n < individualColumns:
			rowErrs = append(rowErrs, RowError{Line: line, Err: fmt.Errorf("insufficient columns (%d)", n)})
		case n == individualColumns:
			perf, err := p.individual(row)
			if err != nil {
				rowErrs = append(rowErrs, RowError{Line: line, Err: err})
				continue
			}
			batch.Performances = append(batch.Performances, perf)
			batch.Lines = append(batch.Lines, line)
		case n == relayColumns:
			relay, err := p.relay(row)
			if err != nil {
				rowErrs = append(rowErrs, RowError{Line: line, Err: err})
				continue
			}
			relay.Line = line
			batch.Relays = append(batch.Relays, relay)
		default:
			rowErrs = append(rowErrs, RowError{Line: line, Err: fmt.Errorf("invalid number of columns (%d)", n)})
		}
	}

	if len(rowErrs) > 0 {
		return nil, types.NewError(types.KindMalformedInput, "importer.Parse", rowErrs)
	}
	return batch, nil
}

// AsRowErrors extracts the row errors from an import failure.
func AsRowErrors(err error) (RowErrors, bool) {
	var rowErrs RowErrors
	if errors.As(err, &rowErrs) {
		return rowErrs, true
	}
	return nil, false
}

type parser struct {
	swimmers []types.Swimmer
	meets    []types.Meet
}

func (p *parser) individual(row []string) (types.Performance, error) {
	swimmer, err := p.swimmer(row[0])
	if err != nil {
		return types.Performance{}, err
	}
	meet, err := p.meet(row[1])
	if err != nil {
		return types.Performance{}, err
	}
	event, ok := types.EventFromLabel(row[2])
	if !ok {
		return types.Performance{}, fmt.Errorf("event not found: %q", row[2])
	}
	swimKind, err := parseSwimKind(row[3])
	if err != nil {
		return types.Performance{}, err
	}
	startKind, err := parseStartKind(row[4])
	if err != nil {
		return types.Performance{}, err
	}
	secs, err := types.ParseSwimTime(row[5])
	if err != nil {
		return types.Performance{}, err
	}

	return types.Performance{
		SwimmerID:   swimmer.ID,
		SwimmerName: swimmer.Name,
		MeetID:      meet.ID,
		MeetDate:    meet.Date,
		Event:       event,
		SwimKind:    swimKind,
		StartKind:   startKind,
		Time:        secs,
	}, nil
}

func (p *parser) relay(row []string) (RelayRow, error) {
	var out RelayRow
	for i := 0; i < types.RelayLegs; i++ {
		swimmer, err := p.swimmer(row[i])
		if err != nil {
			return RelayRow{}, fmt.Errorf("leg %d: %w", i+1, err)
		}
		out.SwimmerIDs[i] = swimmer.ID
	}
	meet, err := p.meet(row[4])
	if err != nil {
		return RelayRow{}, err
	}
	out.MeetID = meet.ID

	relayType, err := parseRelayType(row[5])
	if err != nil {
		return RelayRow{}, err
	}
	out.Type = relayType

	if out.Time, err = types.ParseSwimTime(row[8]); err != nil {
		return RelayRow{}, err
	}
	return out, nil
}

// swimmer finds the first known swimmer whose name the cell contains, so
// cells like "Avery Kim '26" still match.
func (p *parser) swimmer(cell string) (types.Swimmer, error) {
	for _, s := range p.swimmers {
		if s.Name != "" && strings.Contains(cell, s.Name) {
			return s, nil
		}
	}
	return types.Swimmer{}, fmt.Errorf("swimmer not found: %q", cell)
}

func (p *parser) meet(cell string) (types.Meet, error) {
	for _, m := range p.meets {
		if m.Name != "" && strings.Contains(cell, m.Name) {
			return m, nil
		}
	}
	return types.Meet{}, fmt.Errorf("meet not found: %q", cell)
}

func parseSwimKind(cell string) (types.SwimKind, error) {
	lower := strings.ToLower(cell)
	switch {
	case strings.Contains(lower, "individual"):
		return types.SwimIndividual, nil
	case strings.Contains(lower, "relay"):
		return types.SwimRelayLeg, nil
	default:
		return "", fmt.Errorf("type must be individual or relay: %q", cell)
	}
}

// parseStartKind accepts the "fs"/"rs" abbreviations used on meet sheets as
// well as the words.
func parseStartKind(cell string) (types.StartKind, error) {
	lower := strings.ToLower(cell)
	switch {
	case strings.Contains(lower, "fs"):
		return types.StartFlat, nil
	case strings.Contains(lower, "rs"):
		return types.StartRelay, nil
	case strings.Contains(lower, "flat"):
		return types.StartFlat, nil
	case strings.Contains(lower, "relay"):
		return types.StartRelay, nil
	default:
		return "", fmt.Errorf("start must be flat, relay, fs or rs: %q", cell)
	}
}

func parseRelayType(cell string) (types.RelayType, error) {
	code := types.RelayType(strings.ToLower(cell))
	if _, ok := code.LegEvent(1); ok {
		return code, nil
	}
	if rt, ok := types.RelayTypeFromLabel(cell); ok {
		return rt, nil
	}
	return "", fmt.Errorf("unknown relay type: %q", cell)
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}
