package textdiff

import (
	"errors"
	"fmt"
)

// ErrMalformedStructuredInput is matched by every structured-mode parse failure.
var ErrMalformedStructuredInput = errors.New("malformed structured input")

// Side names one of the two documents under comparison.
type Side int

const (
	NoSide Side = iota
	Left
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return ""
	}
}

// StructuredInputError reports a document that could not be parsed in
// structured mode. Offset is the byte offset of the syntax error, or -1 when
// the parser did not report one.
type StructuredInputError struct {
	Side    Side
	Message string
	Offset  int64
}

func (e *StructuredInputError) Error() string {
	var prefix string
	if e.Side != NoSide {
		prefix = e.Side.String() + ": "
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("%sinvalid JSON at offset %d: %s", prefix, e.Offset, e.Message)
	}
	return fmt.Sprintf("%sinvalid JSON: %s", prefix, e.Message)
}

func (e *StructuredInputError) Unwrap() error {
	return ErrMalformedStructuredInput
}
