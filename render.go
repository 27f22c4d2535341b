package textdiff

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// RowKind is the kind of a rendered row.
type RowKind int

const (
	RowEqual RowKind = iota
	RowAdded
	RowRemoved
	RowChanged
	// RowCollapsed stands in for a run of hidden unchanged hunks.
	RowCollapsed
)

func (k RowKind) String() string {
	switch k {
	case RowEqual:
		return "equal"
	case RowAdded:
		return "added"
	case RowRemoved:
		return "removed"
	case RowChanged:
		return "changed"
	case RowCollapsed:
		return "collapsed"
	default:
		return "unknown"
	}
}

func (k RowKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Cell is one side of a row. Number is 0 when the side has no line.
type Cell struct {
	Number   int       `json:"number,omitempty"`
	Segments []Segment `json:"segments,omitempty"`
	// Markup is the escaped line; changed segments are wrapped in a span.
	Markup string `json:"markup"`
}

// Present reports whether the cell holds a line.
func (c Cell) Present() bool { return c.Number > 0 }

// Label is the line number as displayed, or "" for an absent side.
func (c Cell) Label() string {
	if c.Number == 0 {
		return ""
	}
	return strconv.Itoa(c.Number)
}

// Row is a renderer-facing projection of a hunk.
//
// In side-by-side mode every hunk maps to one row. In inline mode a changed
// hunk maps to a RowRemoved row carrying only Left followed by a RowAdded row
// carrying only Right.
type Row struct {
	Kind   RowKind `json:"kind"`
	Left   Cell    `json:"left"`
	Right  Cell    `json:"right"`
	Hidden int     `json:"hidden,omitempty"` // RowCollapsed only
}

// ViewModel is the presentation-ready form of a comparison.
type ViewModel struct {
	Mode ViewMode `json:"mode"`
	Rows []Row    `json:"rows"`
	// Identical is set when no hunk is a change; Rows is then empty.
	Identical bool `json:"identical"`
	// Coarse is set when at least one changed pair skipped word alignment.
	Coarse bool `json:"coarse,omitempty"`
}

// Render lays out hunks for display. Hunks within the context window of a
// change stay visible; other runs collapse into a single marker row.
func Render(hunks []Hunk, mode ViewMode, o ...FuncOption) ViewModel {
	cfg := newConfig(o)
	return render(hunks, mode, cfg)
}

func render(hunks []Hunk, mode ViewMode, cfg config) ViewModel {
	vm := ViewModel{Mode: mode}

	visible := visibility(hunks, cfg.context)
	if visible == nil {
		vm.Identical = true
		return vm
	}

	for i := 0; i < len(hunks); {
		if !visible[i] {
			j := i
			for j < len(hunks) && !visible[j] {
				j++
			}
			vm.Rows = append(vm.Rows, Row{Kind: RowCollapsed, Hidden: j - i})
			i = j
			continue
		}

		h := hunks[i]
		switch h.Kind {
		case KindEqual:
			vm.Rows = append(vm.Rows, Row{
				Kind:  RowEqual,
				Left:  plainCell(h.LeftLineNumber, h.LeftLine),
				Right: plainCell(h.RightLineNumber, h.RightLine),
			})
		case KindRemoved:
			vm.Rows = append(vm.Rows, Row{Kind: RowRemoved, Left: changedCell(h.LeftLineNumber, h.LeftLine)})
		case KindAdded:
			vm.Rows = append(vm.Rows, Row{Kind: RowAdded, Right: changedCell(h.RightLineNumber, h.RightLine)})
		case KindChanged:
			wd := DiffWords(h.LeftLine, h.RightLine, cfg.wordPairLimit)
			if !wd.Detailed {
				vm.Coarse = true
				cfg.logger.Debug("word alignment skipped",
					zap.Int("left_line", h.LeftLineNumber),
					zap.Int("right_line", h.RightLineNumber),
					zap.Int("pair_limit", cfg.wordPairLimit))
			}
			left := segmentCell(h.LeftLineNumber, wd.Left, "word-removed")
			right := segmentCell(h.RightLineNumber, wd.Right, "word-added")
			if mode == Inline {
				vm.Rows = append(vm.Rows, Row{Kind: RowRemoved, Left: left}, Row{Kind: RowAdded, Right: right})
			} else {
				vm.Rows = append(vm.Rows, Row{Kind: RowChanged, Left: left, Right: right})
			}
		}
		i++
	}
	return vm
}

// visibility marks every change and the context hunks on either side of it.
// It returns nil when nothing changed.
func visibility(hunks []Hunk, context int) []bool {
	var visible []bool
	// Changes at indexes below reach have already marked up to reach-1.
	reach := 0
	for i, h := range hunks {
		if h.Kind == KindEqual {
			continue
		}
		if visible == nil {
			visible = make([]bool, len(hunks))
		}
		from := max(i-context, reach)
		to := min(i+context+1, len(hunks))
		for j := from; j < to; j++ {
			visible[j] = true
		}
		reach = max(reach, to)
	}
	return visible
}

func plainCell(number int, line string) Cell {
	return Cell{
		Number:   number,
		Segments: []Segment{{Text: line}},
		Markup:   html.EscapeString(line),
	}
}

// changedCell is a line that exists on one side only. The whole line is the
// change, so it is not wrapped in word markers.
func changedCell(number int, line string) Cell {
	return Cell{
		Number:   number,
		Segments: []Segment{{Text: line, Changed: true}},
		Markup:   html.EscapeString(line),
	}
}

func segmentCell(number int, segs []Segment, class string) Cell {
	var b strings.Builder
	for _, s := range segs {
		if s.Changed {
			b.WriteString(`<span class="`)
			b.WriteString(class)
			b.WriteString(`">`)
			b.WriteString(html.EscapeString(s.Text))
			b.WriteString(`</span>`)
			continue
		}
		b.WriteString(html.EscapeString(s.Text))
	}
	return Cell{Number: number, Segments: segs, Markup: b.String()}
}

// HTML serializes the view model as a table, or as a placeholder when the
// documents are identical.
func (vm ViewModel) HTML() string {
	if vm.Identical {
		return `<div class="no-diff">No differences</div>`
	}

	var b strings.Builder
	if vm.Mode == Inline {
		b.WriteString(`<table class="diff diff-inline">`)
	} else {
		b.WriteString(`<table class="diff diff-side-by-side">`)
	}
	b.WriteByte('\n')

	for _, r := range vm.Rows {
		if r.Kind == RowCollapsed {
			cols := 4
			if vm.Mode == Inline {
				cols = 3
			}
			b.WriteString(`<tr class="collapsed"><td colspan="`)
			b.WriteString(strconv.Itoa(cols))
			b.WriteString(`">`)
			b.WriteString(collapsedLabel(r.Hidden))
			b.WriteString("</td></tr>\n")
			continue
		}

		b.WriteString(`<tr class="`)
		b.WriteString(r.Kind.String())
		b.WriteString(`">`)
		if vm.Mode == Inline {
			content := r.Left.Markup
			if !r.Left.Present() {
				content = r.Right.Markup
			}
			writeTD(&b, "num", r.Left.Label())
			writeTD(&b, "num", r.Right.Label())
			writeTD(&b, "code", content)
		} else {
			writeTD(&b, "num", r.Left.Label())
			writeTD(&b, "code", r.Left.Markup)
			writeTD(&b, "num", r.Right.Label())
			writeTD(&b, "code", r.Right.Markup)
		}
		b.WriteString("</tr>\n")
	}

	b.WriteString("</table>")
	return b.String()
}

func writeTD(b *strings.Builder, class, content string) {
	b.WriteString(`<td class="`)
	b.WriteString(class)
	b.WriteString(`">`)
	b.WriteString(content)
	b.WriteString(`</td>`)
}

func collapsedLabel(n int) string {
	if n == 1 {
		return "1 unchanged line"
	}
	return strconv.Itoa(n) + " unchanged lines"
}
