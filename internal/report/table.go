package report

import (
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

// cell is one table cell. style is applied after padding so escape codes
// never count toward the column width.
type cell struct {
	text  string
	style color.Style
}

func plain(text string) cell { return cell{text: text} }

// table accumulates rows and writes them column-aligned.
type table struct {
	header []string
	rows   [][]cell
}

func newTable(header ...string) *table {
	return &table{header: header}
}

func (t *table) add(cells ...cell) {
	t.rows = append(t.rows, cells)
}

func (t *table) write(w io.Writer, useColor bool) error {
	widths := make([]int, len(t.header))
	for i, h := range t.header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, c := range row {
			if i < len(widths) {
				if n := runewidth.StringWidth(c.text); n > widths[i] {
					widths[i] = n
				}
			}
		}
	}

	var b strings.Builder
	headerStyle := color.New(color.OpBold)
	for i, h := range t.header {
		writeCell(&b, i, cell{text: h, style: headerStyle}, widths[i], i == len(widths)-1, useColor)
	}
	b.WriteByte('\n')
	for i, width := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("─", width))
	}
	b.WriteByte('\n')

	for _, row := range t.rows {
		for i := range widths {
			c := plain("")
			if i < len(row) {
				c = row[i]
			}
			writeCell(&b, i, c, widths[i], i == len(widths)-1, useColor)
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// writeCell writes column col padded to width. The last column is not padded.
func writeCell(b *strings.Builder, col int, c cell, width int, last bool, useColor bool) {
	if col > 0 {
		b.WriteString("  ")
	}
	text := c.text
	if useColor && len(c.style) > 0 && text != "" {
		text = c.style.Sprint(text)
	}
	b.WriteString(text)
	if !last {
		if pad := width - runewidth.StringWidth(c.text); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
}
