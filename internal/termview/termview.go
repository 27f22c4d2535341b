// Package termview draws a textdiff.ViewModel on a terminal.
package termview

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/kalafut/textdiff"
)

const (
	DefaultWidth = 120
	minWidth     = 24
	numberWidth  = 5
)

// Options control terminal output.
type Options struct {
	Width int  // total columns; 0 means DefaultWidth
	Color bool // emit ANSI styling
}

type styles struct {
	enabled     bool
	number      lipgloss.Style
	removed     lipgloss.Style
	added       lipgloss.Style
	wordRemoved lipgloss.Style
	wordAdded   lipgloss.Style
	collapsed   lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	if !color {
		return styles{}
	}
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)
	return styles{
		enabled:     true,
		number:      r.NewStyle().Foreground(lipgloss.Color("244")),
		removed:     r.NewStyle().Foreground(lipgloss.Color("167")),
		added:       r.NewStyle().Foreground(lipgloss.Color("71")),
		wordRemoved: r.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("124")),
		wordAdded:   r.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("114")),
		collapsed:   r.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

func (s styles) apply(st lipgloss.Style, text string) string {
	if !s.enabled || text == "" {
		return text
	}
	return st.Render(text)
}

// Render writes vm to w, one terminal line per row.
func Render(w io.Writer, vm textdiff.ViewModel, opts Options) error {
	width := opts.Width
	if width == 0 {
		width = DefaultWidth
	}
	width = max(width, minWidth)

	bw := bufio.NewWriter(w)
	st := newStyles(w, opts.Color)

	if vm.Identical {
		fmt.Fprintln(bw, st.apply(st.collapsed, "No differences"))
		return bw.Flush()
	}

	for _, row := range vm.Rows {
		var line string
		if row.Kind == textdiff.RowCollapsed {
			line = st.apply(st.collapsed, centered(collapsedLabel(row.Hidden), width))
		} else if vm.Mode == textdiff.Inline {
			line = inlineRow(row, width, st)
		} else {
			line = sideBySideRow(row, width, st)
		}
		if _, err := fmt.Fprintln(bw, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// sideBySideRow lays out "NNNN m text │ NNNN m text" where m is the change marker.
func sideBySideRow(row textdiff.Row, width int, st styles) string {
	// Two number columns, two markers, the separator and its padding.
	col := (width - 2*numberWidth - 2*2 - 3) / 2

	leftMarker, rightMarker := " ", " "
	leftStyle, rightStyle := st.number, st.number
	switch row.Kind {
	case textdiff.RowRemoved:
		leftMarker, leftStyle = "-", st.removed
	case textdiff.RowAdded:
		rightMarker, rightStyle = "+", st.added
	case textdiff.RowChanged:
		leftMarker, leftStyle = "-", st.removed
		rightMarker, rightStyle = "+", st.added
	}

	var b strings.Builder
	b.WriteString(st.apply(st.number, padLeft(row.Left.Label(), numberWidth-1)))
	b.WriteByte(' ')
	b.WriteString(st.apply(leftStyle, leftMarker))
	b.WriteByte(' ')
	b.WriteString(cell(row.Left, col, leftStyle, st.wordRemoved, st))
	b.WriteString(" │ ")
	b.WriteString(st.apply(st.number, padLeft(row.Right.Label(), numberWidth-1)))
	b.WriteByte(' ')
	b.WriteString(st.apply(rightStyle, rightMarker))
	b.WriteByte(' ')
	b.WriteString(cell(row.Right, col, rightStyle, st.wordAdded, st))
	return b.String()
}

// inlineRow lays out "NNNN NNNN m text".
func inlineRow(row textdiff.Row, width int, st styles) string {
	col := width - 2*numberWidth - 2

	c, marker, lineStyle, wordStyle := row.Left, " ", st.number, st.wordRemoved
	switch row.Kind {
	case textdiff.RowRemoved:
		marker, lineStyle = "-", st.removed
	case textdiff.RowAdded:
		c, marker, lineStyle, wordStyle = row.Right, "+", st.added, st.wordAdded
	}

	var b strings.Builder
	b.WriteString(st.apply(st.number, padLeft(row.Left.Label(), numberWidth-1)))
	b.WriteByte(' ')
	b.WriteString(st.apply(st.number, padLeft(row.Right.Label(), numberWidth-1)))
	b.WriteByte(' ')
	b.WriteString(st.apply(lineStyle, marker))
	b.WriteByte(' ')
	b.WriteString(cell(c, col, lineStyle, wordStyle, st))
	return b.String()
}

// cell fits a cell to exactly width columns. Unchanged text of an equal row is
// not styled.
func cell(c textdiff.Cell, width int, lineStyle, wordStyle lipgloss.Style, st styles) string {
	if !c.Present() {
		return strings.Repeat(" ", width)
	}

	pieces, used := fit(c.Segments, width)
	detail := len(c.Segments) > 1

	var b strings.Builder
	for _, p := range pieces {
		switch {
		case p.changed && detail:
			b.WriteString(st.apply(wordStyle, p.text))
		case p.changed:
			b.WriteString(st.apply(lineStyle, p.text))
		default:
			b.WriteString(p.text)
		}
	}
	if used < width {
		b.WriteString(strings.Repeat(" ", width-used))
	}
	return b.String()
}

func padLeft(s string, width int) string {
	if n := TextWidth(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

func centered(s string, width int) string {
	n := TextWidth(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}

func collapsedLabel(n int) string {
	if n == 1 {
		return "⋯ 1 unchanged line ⋯"
	}
	return fmt.Sprintf("⋯ %d unchanged lines ⋯", n)
}
