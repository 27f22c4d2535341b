package termview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalafut/textdiff"
)

func run(t *testing.T, left, right string, mode textdiff.ViewMode) textdiff.ViewModel {
	t.Helper()
	res, err := textdiff.Run(left, right, textdiff.Options{ViewMode: mode})
	require.NoError(t, err)
	return res.View
}

func lines(out string) []string {
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func TestRender_sideBySide(t *testing.T) {
	vm := run(t, "alpha\nbeta\ngamma", "alpha\nBETA\ngamma\ndelta", textdiff.SideBySide)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, vm, Options{Width: 60}))

	got := lines(buf.String())
	require.Len(t, got, 4)
	for _, l := range got {
		assert.LessOrEqual(t, TextWidth(l), 60, l)
		assert.Contains(t, l, "│")
	}
	assert.Contains(t, got[1], "   2 - beta")
	assert.Contains(t, got[1], "   2 + BETA")
	assert.Contains(t, got[3], "   4 + delta")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestRender_inline(t *testing.T) {
	vm := run(t, "a\nb", "a\nc", textdiff.Inline)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, vm, Options{Width: 40}))

	assert.Equal(t, []string{
		"   1    1   a",
		"   2      - b",
		"        2 + c",
	}, lines(buf.String()))
}

func TestRender_identical(t *testing.T) {
	vm := run(t, "same", "same", textdiff.SideBySide)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, vm, Options{}))
	assert.Equal(t, "No differences\n", buf.String())
}

func TestRender_collapsed(t *testing.T) {
	left := strings.Repeat("same\n", 20) + "old"
	right := strings.Repeat("same\n", 20) + "new"
	vm := run(t, left, right, textdiff.Inline)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, vm, Options{Width: 50}))
	assert.Contains(t, lines(buf.String())[0], "⋯ 16 unchanged lines ⋯")
}

func TestRender_truncation(t *testing.T) {
	long := strings.Repeat("漢字", 40)
	vm := run(t, "x", long, textdiff.SideBySide)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, vm, Options{Width: 50}))

	for _, l := range lines(buf.String()) {
		assert.LessOrEqual(t, TextWidth(l), 50)
	}
	assert.Contains(t, buf.String(), "…")
}

func TestRender_color(t *testing.T) {
	vm := run(t, "x = 1", "x = 2", textdiff.SideBySide)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, vm, Options{Width: 60, Color: true}))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestFit(t *testing.T) {
	segs := []textdiff.Segment{{Text: "ab"}, {Text: "cdef", Changed: true}}

	pieces, used := fit(segs, 10)
	assert.Equal(t, 6, used)
	assert.Equal(t, []piece{{text: "ab"}, {text: "cdef", changed: true}}, pieces)

	pieces, used = fit(segs, 4)
	assert.Equal(t, 4, used)
	assert.Equal(t, []piece{{text: "ab"}, {text: "c", changed: true}, {text: "…"}}, pieces)

	// A wide cluster that does not fit is dropped whole.
	pieces, used = fit([]textdiff.Segment{{Text: "a漢"}}, 2)
	assert.Equal(t, 2, used)
	assert.Equal(t, []piece{{text: "a"}, {text: "…"}}, pieces)

	assert.Equal(t, 8, TextWidth("\tabcd"))
}
