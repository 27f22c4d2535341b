package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kalafut/textdiff/internal/config"
)

func TestCompare(t *testing.T) {
	type TestCase struct {
		name   string
		left   string
		right  string
		format string
		stat   bool
		code   int
		exp    string
	}

	tests := []TestCase{
		{"plain", "a\nb\nc", "a\nx\nc", "plain", false, exitDiff, "  a\n- b\n+ x\n  c\n"},
		{"plain identical", "a", "a", "plain", false, exitSame, "  a\n"},
		{"plain empty", "", "", "plain", false, exitSame, ""},
		{"stat", "a\nb", "a\nc\nd", "plain", true, exitDiff, "1 added, 0 removed, 1 changed\n"},
		{"html identical", "same", "same", "html", false, exitSame, "<div class=\"no-diff\">No differences</div>\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			code, err := compare(&buf, test.left, test.right, config.Default().Compare,
				output{format: test.format, stat: test.stat}, zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, test.code, code)
			assert.Equal(t, test.exp, buf.String())
		})
	}
}

func TestCompareJSON(t *testing.T) {
	var buf bytes.Buffer
	code, err := compare(&buf, "a", "b", config.Default().Compare, output{format: "json"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, exitDiff, code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Contains(t, got, "html")
	assert.Contains(t, got, "plainText")
	assert.Equal(t, map[string]any{"added": 0.0, "removed": 0.0, "changed": 1.0}, got["stats"])
}

func TestCompareTerm(t *testing.T) {
	var buf bytes.Buffer
	c := config.Default().Compare
	c.View = "inline"
	code, err := compare(&buf, "a\nb", "a\nc", c, output{format: "term", width: 40}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, exitDiff, code)
	assert.Contains(t, buf.String(), "- b")
	assert.Contains(t, buf.String(), "+ c")
}

func TestCompareStructured(t *testing.T) {
	c := config.Default().Compare
	c.Structured = true

	var buf bytes.Buffer
	code, err := compare(&buf, `{"b":1,"a":2}`, `{"a":2,"b":1}`, c, output{format: "plain"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, exitSame, code)

	code, err = compare(&buf, `{"a":`, `{}`, c, output{format: "plain"}, zap.NewNop())
	assert.Error(t, err)
	assert.Equal(t, exitError, code)
}

func TestApplyCompareFlags(t *testing.T) {
	saved := CLI.Compare
	defer func() { CLI.Compare = saved }()

	c := config.Default().Compare
	CLI.Compare.Context = -1
	applyCompareFlags(&c)
	assert.Equal(t, config.Default().Compare, c)

	CLI.Compare.View = "inline"
	CLI.Compare.Context = 0
	CLI.Compare.IgnoreWhitespace = true
	CLI.Compare.Color = "never"
	applyCompareFlags(&c)
	assert.Equal(t, "inline", c.View)
	assert.Equal(t, 0, c.Context)
	assert.True(t, c.IgnoreWhitespace)
	assert.Equal(t, "never", c.Color)
}

func TestUseColor(t *testing.T) {
	assert.True(t, useColor("always"))
	assert.False(t, useColor("never"))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, useColor("auto"))
}
