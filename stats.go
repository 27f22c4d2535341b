package textdiff

import "strings"

// Stats counts non-equal hunks by kind.
type Stats struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
	Changed int `json:"changed"`
}

// Total is the number of non-equal hunks.
func (s Stats) Total() int {
	return s.Added + s.Removed + s.Changed
}

func ComputeStats(hunks []Hunk) Stats {
	var s Stats
	for _, h := range hunks {
		switch h.Kind {
		case KindAdded:
			s.Added++
		case KindRemoved:
			s.Removed++
		case KindChanged:
			s.Changed++
		}
	}
	return s
}

// PlainText renders hunks in a unified form: "  " for equal lines, "- " for
// removed, "+ " for added, and a changed hunk as its removed line followed by
// its added line. Lines are joined with "\n" and there is no trailing newline.
// The output does not depend on the view mode.
func PlainText(hunks []Hunk) string {
	var b strings.Builder
	first := true
	line := func(prefix, text string) {
		if !first {
			b.WriteByte('\n')
		}
		first = false
		b.WriteString(prefix)
		b.WriteString(text)
	}

	for _, h := range hunks {
		switch h.Kind {
		case KindEqual:
			line("  ", h.LeftLine)
		case KindRemoved:
			line("- ", h.LeftLine)
		case KindAdded:
			line("+ ", h.RightLine)
		case KindChanged:
			line("- ", h.LeftLine)
			line("+ ", h.RightLine)
		}
	}
	return b.String()
}
