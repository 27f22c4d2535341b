package textdiff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	type TestCase struct {
		Name string

		Text string

		Expected []string
	}

	for i, tc := range []TestCase{
		{"Empty", "", []string{""}},
		{"Single", "abc", []string{"abc"}},
		{"Trailing LF", "a\n", []string{"a", ""}},
		{"LF", "a\nb\nc", []string{"a", "b", "c"}},
		{"CRLF", "a\r\nb\r\n", []string{"a", "b", ""}},
		{"CR", "a\rb", []string{"a", "b"}},
		{"Mixed", "a\r\n\rb\nc\r", []string{"a", "", "b", "c", ""}},
		{"Blank lines", "\n\n", []string{"", "", ""}},
		{"LF CR is two terminators", "a\n\rb", []string{"a", "", "b"}},
	} {
		actual := SplitLines(tc.Text)
		assert.Equal(t, tc.Expected, actual, fmt.Sprintf("Test case #%d, %s", i, tc.Name))
	}
}

func TestSplitLines_countMatchesTerminators(t *testing.T) {
	text := strings.Repeat("line\r\n", 50) + strings.Repeat("x\n", 25) + "tail"
	lines := SplitLines(text)
	assert.Len(t, lines, 76)
	assert.Equal(t, "tail", lines[75])
}
