package termview

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"

	"github.com/kalafut/textdiff"
)

const tabWidth = 4

var cond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	c.StrictEmojiNeutral = true
	return c
}()

// TextWidth returns the number of terminal columns s occupies once tabs are expanded.
func TextWidth(s string) int {
	return cond.StringWidth(expandTabs(s))
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// piece is a fitted fragment of a cell.
type piece struct {
	text    string
	changed bool
}

// fit cuts segments to at most width columns, never splitting a grapheme
// cluster, and reports the columns used. A cut line ends with an ellipsis.
func fit(segs []textdiff.Segment, width int) ([]piece, int) {
	total := 0
	for _, s := range segs {
		total += TextWidth(s.Text)
	}
	if total <= width {
		pieces := make([]piece, 0, len(segs))
		for _, s := range segs {
			pieces = append(pieces, piece{text: expandTabs(s.Text), changed: s.Changed})
		}
		return pieces, total
	}
	if width <= 0 {
		return nil, 0
	}

	budget := width - 1 // room for the ellipsis
	used := 0
	var pieces []piece
	for _, s := range segs {
		var b strings.Builder
		g := graphemes.FromString(expandTabs(s.Text))
		for g.Next() {
			cluster := g.Value()
			w := cond.StringWidth(cluster)
			if used+w > budget {
				if b.Len() > 0 {
					pieces = append(pieces, piece{text: b.String(), changed: s.Changed})
				}
				return append(pieces, piece{text: "…"}), used + 1
			}
			b.WriteString(cluster)
			used += w
		}
		if b.Len() > 0 {
			pieces = append(pieces, piece{text: b.String(), changed: s.Changed})
		}
	}
	return append(pieces, piece{text: "…"}), used + 1
}
