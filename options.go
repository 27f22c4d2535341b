package textdiff

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	// DefaultContext is the number of hunks kept visible on each side of a change.
	DefaultContext = 4

	// DefaultWordPairLimit caps word alignment at this many token pairs. It is a
	// tunable, not a contract.
	DefaultWordPairLimit = 100_000
)

// ViewMode selects how hunks are laid out by the renderer.
type ViewMode int

const (
	SideBySide ViewMode = iota
	Inline
)

// String returns the wire name of the view mode.
func (m ViewMode) String() string {
	switch m {
	case SideBySide:
		return "sideBySide"
	case Inline:
		return "inline"
	default:
		return "unknown"
	}
}

// ParseViewMode accepts the wire names plus the CLI spellings "side-by-side" and "sbs".
func ParseViewMode(s string) (ViewMode, error) {
	switch s {
	case "", "sideBySide", "side-by-side", "sbs":
		return SideBySide, nil
	case "inline":
		return Inline, nil
	}
	return SideBySide, fmt.Errorf("unknown view mode %q", s)
}

func (m ViewMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *ViewMode) UnmarshalText(b []byte) error {
	v, err := ParseViewMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Options is the per-comparison record supplied by the host. It is never
// mutated during a run.
type Options struct {
	IgnoreWhitespace bool     `json:"ignoreWhitespace"`
	Structured       bool     `json:"structuredMode"`
	ViewMode         ViewMode `json:"viewMode"`
}

type config struct {
	context       int
	wordPairLimit int
	logger        *zap.Logger
}

func newConfig(o []FuncOption) config {
	cfg := config{
		context:       DefaultContext,
		wordPairLimit: DefaultWordPairLimit,
		logger:        zap.NewNop(),
	}
	for _, f := range o {
		f(&cfg)
	}
	return cfg
}

type FuncOption func(*config)

// WithContext sets how many hunks around each change stay visible. Negative
// values are treated as zero.
func WithContext(n int) FuncOption {
	return func(o *config) {
		if n < 0 {
			n = 0
		}
		o.context = n
	}
}

// WithWordPairLimit sets the token-pair cap above which word alignment is skipped.
func WithWordPairLimit(n int) FuncOption {
	return func(o *config) {
		o.wordPairLimit = n
	}
}

func WithLogger(l *zap.Logger) FuncOption {
	return func(o *config) {
		if l != nil {
			o.logger = l
		}
	}
}
