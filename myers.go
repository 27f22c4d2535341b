// The prefix and suffix trimming in this file was adapted from the go-diff
// library, which in turn was derived from the Diff-Match-Patch library. The
// original copyright is retained:
//
// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

package textdiff

// OpType identifies the type of edit operation.
type OpType int

const (
	// OpEqual means the line is present, unchanged, on both sides.
	OpEqual OpType = iota
	// OpDelete means the line exists only on the left.
	OpDelete
	// OpInsert means the line exists only on the right.
	OpInsert
)

func (t OpType) String() string {
	switch t {
	case OpEqual:
		return "Equal"
	case OpDelete:
		return "Delete"
	case OpInsert:
		return "Insert"
	default:
		return "Unknown"
	}
}

// Edit is one step of an edit script. LeftIndex is -1 for inserts and
// RightIndex is -1 for deletes.
type Edit struct {
	Op         OpType
	LeftIndex  int
	RightIndex int
}

// step is the furthest-reaching x for every diagonal read while searching at
// edit cost d, i.e. the state left behind by cost d-1. It covers diagonals
// -d-1 through d+1 and is never written after it is recorded.
type step struct {
	d     int
	reach []int
}

func (s step) at(k int) int {
	return s.reach[k+s.d+1]
}

// snapshotBudget caps how many reach values one snapshot search may record.
// Snapshots grow with the square of the edit distance; past the cap the
// problem is split at a middle snake and each half is searched on its own.
const snapshotBudget = 1 << 18

// Align computes a shortest edit script turning left into right using Myers'
// O((N+M)D) algorithm. Edits are returned in document order. When
// ignoreWhitespace is set, lines compare equal if they match after folding
// runs of whitespace.
func Align(left, right []string, ignoreWhitespace bool) []Edit {
	return align(left, right, ignoreWhitespace, snapshotBudget)
}

func align(left, right []string, ignoreWhitespace bool, budget int) []Edit {
	if len(left) == 0 && len(right) == 0 {
		return nil
	}

	a, b := left, right
	if ignoreWhitespace {
		a = foldAll(left)
		b = foldAll(right)
	}

	edits := make([]Edit, 0, max(len(a), len(b)))
	return diffLines(a, b, 0, 0, budget, edits)
}

// diffLines appends the edits turning a into b. aOff and bOff are the
// positions of a and b in the full sequences.
func diffLines(a, b []string, aOff, bOff, budget int, edits []Edit) []Edit {
	// Trim off common prefix (speedup).
	prefix := commonPrefixLength(a, b)
	for i := 0; i < prefix; i++ {
		edits = append(edits, Edit{Op: OpEqual, LeftIndex: aOff + i, RightIndex: bOff + i})
	}
	// Trim off common suffix (speedup).
	suffix := commonSuffixLength(a[prefix:], b[prefix:])

	// Compute the diff on the middle block.
	edits = diffMiddle(a[prefix:len(a)-suffix], b[prefix:len(b)-suffix], aOff+prefix, bOff+prefix, budget, edits)

	// Restore the suffix.
	for i := suffix; i > 0; i-- {
		edits = append(edits, Edit{Op: OpEqual, LeftIndex: aOff + len(a) - i, RightIndex: bOff + len(b) - i})
	}
	return edits
}

// diffMiddle handles a block whose first and last lines differ.
func diffMiddle(a, b []string, aOff, bOff, budget int, edits []Edit) []Edit {
	if len(a) == 0 || len(b) == 0 {
		return deleteInsert(a, b, aOff, bOff, edits)
	}

	if script, ok := shortestEditScript(a, b, budget); ok {
		for _, e := range script {
			if e.LeftIndex >= 0 {
				e.LeftIndex += aOff
			}
			if e.RightIndex >= 0 {
				e.RightIndex += bOff
			}
			edits = append(edits, e)
		}
		return edits
	}

	x, y, ok := middleSnake(a, b)
	if !ok || (x == 0 && y == 0) || (x == len(a) && y == len(b)) {
		// No line in common.
		return deleteInsert(a, b, aOff, bOff, edits)
	}
	edits = diffLines(a[:x], b[:y], aOff, bOff, budget, edits)
	return diffLines(a[x:], b[y:], aOff+x, bOff+y, budget, edits)
}

func deleteInsert(a, b []string, aOff, bOff int, edits []Edit) []Edit {
	for i := range a {
		edits = append(edits, Edit{Op: OpDelete, LeftIndex: aOff + i, RightIndex: -1})
	}
	for i := range b {
		edits = append(edits, Edit{Op: OpInsert, LeftIndex: -1, RightIndex: bOff + i})
	}
	return edits
}

// EditDistance counts the non-equal edits in a script.
func EditDistance(edits []Edit) int {
	var d int
	for _, e := range edits {
		if e.Op != OpEqual {
			d++
		}
	}
	return d
}

// shortestEditScript runs the forward greedy search, recording one step per
// cost, then walks the steps backwards to recover the path. It gives up,
// returning false, once the recorded steps would exceed budget values.
func shortestEditScript(a, b []string, budget int) ([]Edit, bool) {
	n, m := len(a), len(b)
	if n == 0 && m == 0 {
		return nil, true
	}

	limit := n + m
	offset := limit + 1
	v := make([]int, 2*limit+3)
	steps := make([]step, 0, 8)
	var cells int

	for d := 0; d <= limit; d++ {
		cells += 2*d + 3
		if cells > budget {
			return nil, false
		}
		steps = append(steps, step{d: d, reach: append([]int(nil), v[offset-d-1:offset+d+2]...)})

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				// Move down from diagonal k+1.
				x = v[offset+k+1]
			} else {
				// Move right from diagonal k-1.
				x = v[offset+k-1] + 1
			}
			y := x - k

			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[offset+k] = x

			if x >= n && y >= m {
				return backtrack(steps, n, m), true
			}
		}
	}

	// Unreachable: a path of cost n+m always exists.
	return nil, false
}

// middleSnake finds a point on a shortest path from (0,0) to (len(a),len(b))
// by searching forward and backward at once, keeping only one reach vector
// per direction. It returns false when the sequences share no line. a and b
// must be non-empty with differing first and last lines.
// See Myers's 1986 paper: An O(ND) Difference Algorithm and Its Variations.
func middleSnake(a, b []string) (x, y int, ok bool) {
	n, m := len(a), len(b)

	maxD := (n + m + 1) / 2
	vOffset := maxD
	vLength := 2*maxD + 2

	v1 := make([]int, vLength)
	v2 := make([]int, vLength)
	for i := range v1 {
		v1[i] = -1
		v2[i] = -1
	}
	v1[vOffset+1] = 0
	v2[vOffset+1] = 0

	delta := n - m
	// If the total number of lines is odd, then the front path will collide with the reverse path.
	front := delta%2 != 0
	// Offsets for start and end of k loop. Prevents mapping of space beyond the grid.
	k1start, k1end := 0, 0
	k2start, k2end := 0, 0
	for d := 0; d < maxD; d++ {
		// Walk the front path one step.
		for k1 := -d + k1start; k1 <= d-k1end; k1 += 2 {
			k1Offset := vOffset + k1
			var x1 int
			if k1 == -d || (k1 != d && v1[k1Offset-1] < v1[k1Offset+1]) {
				x1 = v1[k1Offset+1]
			} else {
				x1 = v1[k1Offset-1] + 1
			}
			y1 := x1 - k1
			for x1 < n && y1 < m && a[x1] == b[y1] {
				x1++
				y1++
			}
			v1[k1Offset] = x1
			if x1 > n {
				// Ran off the right of the graph.
				k1end += 2
			} else if y1 > m {
				// Ran off the bottom of the graph.
				k1start += 2
			} else if front {
				k2Offset := vOffset + delta - k1
				if k2Offset >= 0 && k2Offset < vLength && v2[k2Offset] != -1 {
					// Mirror x2 onto top-left coordinate system.
					if x2 := n - v2[k2Offset]; x1 >= x2 {
						return x1, y1, true
					}
				}
			}
		}
		// Walk the reverse path one step.
		for k2 := -d + k2start; k2 <= d-k2end; k2 += 2 {
			k2Offset := vOffset + k2
			var x2 int
			if k2 == -d || (k2 != d && v2[k2Offset-1] < v2[k2Offset+1]) {
				x2 = v2[k2Offset+1]
			} else {
				x2 = v2[k2Offset-1] + 1
			}
			y2 := x2 - k2
			for x2 < n && y2 < m && a[n-x2-1] == b[m-y2-1] {
				x2++
				y2++
			}
			v2[k2Offset] = x2
			if x2 > n {
				// Ran off the left of the graph.
				k2end += 2
			} else if y2 > m {
				// Ran off the top of the graph.
				k2start += 2
			} else if !front {
				k1Offset := vOffset + delta - k2
				if k1Offset >= 0 && k1Offset < vLength && v1[k1Offset] != -1 {
					x1 := v1[k1Offset]
					y1 := vOffset + x1 - k1Offset
					if x1 >= n-x2 {
						return x1, y1, true
					}
				}
			}
		}
	}
	return 0, 0, false
}

func backtrack(steps []step, n, m int) []Edit {
	edits := make([]Edit, 0, n+m)
	x, y := n, m

	for d := len(steps) - 1; d >= 0; d-- {
		s := steps[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && s.at(k-1) < s.at(k+1)) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := s.at(prevK)
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			x--
			y--
			edits = append(edits, Edit{Op: OpEqual, LeftIndex: x, RightIndex: y})
		}

		if d > 0 {
			if x == prevX {
				edits = append(edits, Edit{Op: OpInsert, LeftIndex: -1, RightIndex: prevY})
			} else {
				edits = append(edits, Edit{Op: OpDelete, LeftIndex: prevX, RightIndex: -1})
			}
		}
		x, y = prevX, prevY
	}

	for i, j := 0, len(edits)-1; i < j; i, j = i+1, j-1 {
		edits[i], edits[j] = edits[j], edits[i]
	}
	return edits
}

func foldAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = foldWhitespace(l)
	}
	return out
}

// commonPrefixLength returns the length of the common prefix of two line slices.
func commonPrefixLength(a, b []string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// commonSuffixLength returns the length of the common suffix of two line slices.
func commonSuffixLength(a, b []string) int {
	i1 := len(a)
	i2 := len(b)
	for n := 0; ; n++ {
		i1--
		i2--
		if i1 < 0 || i2 < 0 || a[i1] != b[i2] {
			return n
		}
	}
}
