package textdiff

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/pretty"
)

// Width 0 keeps every array element on its own line, so a change to one
// element is a change to one line.
var canonicalJSON = &pretty.Options{
	Width:    0,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: true,
}

// Normalize prepares text for comparison. In structured mode the text must be
// a JSON document; it is re-serialized with sorted keys, two-space
// indentation, one array element per line, minimal string escaping and a
// single spelling per number, so documents with the same value normalize to
// the same bytes. Whitespace folding is not applied here: it happens per line
// during alignment so the original text is still what gets displayed.
//
// Parse failures are returned as *StructuredInputError with Side unset.
func Normalize(text string, opts Options) (string, error) {
	if !opts.Structured {
		return text, nil
	}

	data := []byte(text)
	// Unmarshal checks the whole input and reports syntax error offsets.
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", structuredError(err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", structuredError(err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(canonicalValue(v)); err != nil {
		return "", structuredError(err)
	}

	out := pretty.PrettyOptions(buf.Bytes(), canonicalJSON)
	return string(bytes.TrimRight(out, "\n")), nil
}

// canonicalValue rewrites every number in v to its canonical spelling.
// Objects come back out of encoding/json with sorted keys.
func canonicalValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			v[k] = canonicalValue(e)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = canonicalValue(e)
		}
		return v
	case json.Number:
		return canonicalNumber(v)
	default:
		return v
	}
}

// maxExactInt is the largest magnitude below which every integer is exact in a float64.
const maxExactInt = 1 << 53

// canonicalNumber spells equal numbers the same way: integral values as plain
// integers, everything else the way encoding/json writes a float64. Integer
// literals too large for a float64 keep their digits.
func canonicalNumber(n json.Number) json.Number {
	s := n.String()
	f, err := strconv.ParseFloat(s, 64)
	if err == nil && f > -maxExactInt && f < maxExactInt && f == math.Trunc(f) {
		return json.Number(strconv.FormatInt(int64(f), 10))
	}
	if !strings.ContainsAny(s, ".eE") {
		return n
	}
	if err != nil {
		// Out of float64 range: nothing better than the source spelling.
		return n
	}
	b, err := json.Marshal(f)
	if err != nil {
		return n
	}
	return json.Number(b)
}

func structuredError(err error) *StructuredInputError {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &StructuredInputError{Message: syntaxErr.Error(), Offset: syntaxErr.Offset}
	}
	return &StructuredInputError{Message: err.Error(), Offset: -1}
}

// foldWhitespace collapses runs of whitespace to a single space and trims both ends.
func foldWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
