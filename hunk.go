package textdiff

import (
	"encoding/json"
	"fmt"
)

// Kind classifies a hunk.
type Kind int

const (
	KindEqual Kind = iota
	KindAdded
	KindRemoved
	KindChanged
)

func (k Kind) String() string {
	switch k {
	case KindEqual:
		return "equal"
	case KindAdded:
		return "added"
	case KindRemoved:
		return "removed"
	case KindChanged:
		return "changed"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for _, c := range []Kind{KindEqual, KindAdded, KindRemoved, KindChanged} {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown hunk kind %q", b)
}

// Hunk is one line on zero or one position of each side. A side is present
// exactly when its line number is non-zero; line numbers are 1-based.
//
//   - KindEqual and KindChanged carry both sides.
//   - KindAdded carries only the right side.
//   - KindRemoved carries only the left side.
//
// In JSON, leftLine and rightLine are omitted exactly when that side has no
// line, so an empty line is still written as "".
type Hunk struct {
	Kind            Kind
	LeftLine        string
	RightLine       string
	LeftLineNumber  int
	RightLineNumber int
}

// HasLeft reports whether the left side contributed a line.
func (h Hunk) HasLeft() bool { return h.LeftLineNumber > 0 }

// HasRight reports whether the right side contributed a line.
func (h Hunk) HasRight() bool { return h.RightLineNumber > 0 }

type hunkJSON struct {
	Kind            Kind    `json:"kind"`
	LeftLine        *string `json:"leftLine,omitempty"`
	RightLine       *string `json:"rightLine,omitempty"`
	LeftLineNumber  int     `json:"leftLineNumber,omitempty"`
	RightLineNumber int     `json:"rightLineNumber,omitempty"`
}

func (h Hunk) MarshalJSON() ([]byte, error) {
	out := hunkJSON{
		Kind:            h.Kind,
		LeftLineNumber:  h.LeftLineNumber,
		RightLineNumber: h.RightLineNumber,
	}
	if h.HasLeft() {
		out.LeftLine = &h.LeftLine
	}
	if h.HasRight() {
		out.RightLine = &h.RightLine
	}
	return json.Marshal(out)
}

func (h *Hunk) UnmarshalJSON(b []byte) error {
	var in hunkJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*h = Hunk{
		Kind:            in.Kind,
		LeftLineNumber:  in.LeftLineNumber,
		RightLineNumber: in.RightLineNumber,
	}
	if in.LeftLine != nil {
		h.LeftLine = *in.LeftLine
	}
	if in.RightLine != nil {
		h.RightLine = *in.RightLine
	}
	return nil
}

// Consolidate groups an edit script into hunks. Each equal edit becomes its
// own hunk. A run of deletes directly followed by a run of inserts is paired
// index for index into changed hunks; whatever is left over on either side
// becomes removed or added hunks. Line numbers are assigned in order.
func Consolidate(edits []Edit, left, right []string) []Hunk {
	hunks := make([]Hunk, 0, len(edits))

	for i := 0; i < len(edits); {
		e := edits[i]
		switch e.Op {
		case OpEqual:
			hunks = append(hunks, Hunk{Kind: KindEqual, LeftLine: left[e.LeftIndex], RightLine: right[e.RightIndex]})
			i++

		case OpDelete:
			delStart := i
			for i < len(edits) && edits[i].Op == OpDelete {
				i++
			}
			insStart := i
			for i < len(edits) && edits[i].Op == OpInsert {
				i++
			}
			dels := edits[delStart:insStart]
			ins := edits[insStart:i]

			paired := min(len(dels), len(ins))
			for j := 0; j < paired; j++ {
				hunks = append(hunks, Hunk{Kind: KindChanged, LeftLine: left[dels[j].LeftIndex], RightLine: right[ins[j].RightIndex]})
			}
			for _, d := range dels[paired:] {
				hunks = append(hunks, Hunk{Kind: KindRemoved, LeftLine: left[d.LeftIndex]})
			}
			for _, in := range ins[paired:] {
				hunks = append(hunks, Hunk{Kind: KindAdded, RightLine: right[in.RightIndex]})
			}

		case OpInsert:
			hunks = append(hunks, Hunk{Kind: KindAdded, RightLine: right[e.RightIndex]})
			i++

		default:
			i++
		}
	}

	numberLines(hunks)
	return hunks
}

func numberLines(hunks []Hunk) {
	var l, r int
	for i := range hunks {
		if hunks[i].Kind != KindAdded {
			l++
			hunks[i].LeftLineNumber = l
		}
		if hunks[i].Kind != KindRemoved {
			r++
			hunks[i].RightLineNumber = r
		}
	}
}
