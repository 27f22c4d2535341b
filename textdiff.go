// Package textdiff compares two text documents line by line. It computes a
// shortest edit script, classifies the result into equal, added, removed and
// changed hunks, highlights word-level changes inside changed lines, and
// renders the outcome as a collapsible view model, plain unified text and
// summary counts.
//
// Every function in this package is a pure function of its arguments and is
// safe to call from any number of goroutines at once.
package textdiff

import (
	"errors"

	"go.uber.org/zap"
)

// Result is a successful comparison.
type Result struct {
	HTML      string    `json:"html"`
	Stats     Stats     `json:"stats"`
	PlainText string    `json:"plainText"`
	Hunks     []Hunk    `json:"hunks"`
	View      ViewModel `json:"-"`
}

// Identical reports whether the documents compared equal.
func (r *Result) Identical() bool {
	return r.Stats.Total() == 0
}

// Run compares leftText with rightText. Both sides are normalized before any
// alignment; if either fails, the returned error is a *StructuredInputError
// naming the side.
func Run(leftText, rightText string, opts Options, o ...FuncOption) (*Result, error) {
	cfg := newConfig(o)

	left, err := Normalize(leftText, opts)
	if err != nil {
		return nil, sideError(Left, err)
	}
	right, err := Normalize(rightText, opts)
	if err != nil {
		return nil, sideError(Right, err)
	}

	var hunks []Hunk
	if left != "" || right != "" {
		leftLines := SplitLines(left)
		rightLines := SplitLines(right)
		edits := Align(leftLines, rightLines, opts.IgnoreWhitespace)
		cfg.logger.Debug("aligned",
			zap.Int("left_lines", len(leftLines)),
			zap.Int("right_lines", len(rightLines)),
			zap.Int("edit_distance", EditDistance(edits)))
		hunks = Consolidate(edits, leftLines, rightLines)
	}
	if hunks == nil {
		hunks = []Hunk{}
	}

	view := render(hunks, opts.ViewMode, cfg)
	return &Result{
		HTML:      view.HTML(),
		Stats:     ComputeStats(hunks),
		PlainText: PlainText(hunks),
		Hunks:     hunks,
		View:      view,
	}, nil
}

func sideError(side Side, err error) error {
	var sErr *StructuredInputError
	if errors.As(err, &sErr) {
		tagged := *sErr
		tagged.Side = side
		return &tagged
	}
	return err
}
