package textdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsAndPlainText(t *testing.T) {
	hunks := []Hunk{
		{Kind: KindEqual, LeftLine: "a", RightLine: "a", LeftLineNumber: 1, RightLineNumber: 1},
		{Kind: KindChanged, LeftLine: "b", RightLine: "x", LeftLineNumber: 2, RightLineNumber: 2},
		{Kind: KindRemoved, LeftLine: "c", LeftLineNumber: 3},
		{Kind: KindAdded, RightLine: "d", RightLineNumber: 3},
		{Kind: KindAdded, RightLine: "", RightLineNumber: 4},
	}

	assert.Equal(t, Stats{Added: 2, Removed: 1, Changed: 1}, ComputeStats(hunks))
	assert.Equal(t, 4, ComputeStats(hunks).Total())
	assert.Equal(t, "  a\n- b\n+ x\n- c\n+ d\n+ ", PlainText(hunks))

	assert.Equal(t, Stats{}, ComputeStats(nil))
	assert.Equal(t, "", PlainText(nil))
}
