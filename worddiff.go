package textdiff

import (
	"unicode"
	"unicode/utf8"
)

// Tokenize splits a line into maximal runs of word characters (letters,
// digits, underscore), maximal runs of whitespace, and single other symbols.
// Concatenating the tokens always yields the line.
func Tokenize(line string) []string {
	var tokens []string
	start := 0
	last := tokenNone

	for i, r := range line {
		class := classify(r)
		if last != tokenNone && (class != last || class == tokenSymbol) {
			tokens = append(tokens, line[start:i])
			start = i
		}
		last = class
	}
	if start < len(line) {
		tokens = append(tokens, line[start:])
	}
	return tokens
}

type tokenClass int

const (
	tokenNone tokenClass = iota
	tokenWord
	tokenSpace
	tokenSymbol
)

func classify(r rune) tokenClass {
	switch {
	case r == utf8.RuneError:
		return tokenSymbol
	case unicode.IsSpace(r):
		return tokenSpace
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return tokenWord
	default:
		return tokenSymbol
	}
}

// Segment is a run of text on one side of a word diff. Changed segments are
// removed (left side) or added (right side).
type Segment struct {
	Text    string `json:"text"`
	Changed bool   `json:"changed,omitempty"`
}

// WordDiff is the word-level alignment of one changed line pair.
type WordDiff struct {
	Left  []Segment
	Right []Segment

	// Detailed is false when the pair was too large to align. Every token is
	// then marked changed, which says nothing about whether the lines share words.
	Detailed bool
}

// DiffWords aligns the tokens of two lines using a longest common
// subsequence. pairLimit caps len(leftTokens)*len(rightTokens); above it the
// alignment is skipped. A pairLimit <= 0 uses DefaultWordPairLimit.
func DiffWords(left, right string, pairLimit int) WordDiff {
	if pairLimit <= 0 {
		pairLimit = DefaultWordPairLimit
	}
	a := Tokenize(left)
	b := Tokenize(right)

	wd := WordDiff{Detailed: true}
	var common []string
	if len(a)*len(b) > pairLimit {
		wd.Detailed = false
	} else {
		common = lcs(a, b)
	}

	var i, j, k int
	for i < len(a) || j < len(b) {
		switch {
		case k < len(common) && i < len(a) && j < len(b) && a[i] == common[k] && b[j] == common[k]:
			wd.Left = appendSegment(wd.Left, a[i], false)
			wd.Right = appendSegment(wd.Right, b[j], false)
			i++
			j++
			k++
		case j < len(b) && (k >= len(common) || b[j] != common[k]):
			wd.Right = appendSegment(wd.Right, b[j], true)
			j++
		case i < len(a) && (k >= len(common) || a[i] != common[k]):
			wd.Left = appendSegment(wd.Left, a[i], true)
			i++
		case j < len(b):
			wd.Right = appendSegment(wd.Right, b[j], true)
			j++
		default:
			wd.Left = appendSegment(wd.Left, a[i], true)
			i++
		}
	}
	return wd
}

// appendSegment extends the last segment when its changed state matches.
func appendSegment(segs []Segment, text string, changed bool) []Segment {
	if n := len(segs); n > 0 && segs[n-1].Changed == changed {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, Segment{Text: text, Changed: changed})
}

// lcs returns one longest common subsequence of a and b.
func lcs(a, b []string) []string {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return nil
	}

	// table[i*(m+1)+j] is the LCS length of a[i:] and b[j:].
	w := m + 1
	table := make([]int, (n+1)*w)
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				table[i*w+j] = table[(i+1)*w+j+1] + 1
			} else {
				table[i*w+j] = max(table[(i+1)*w+j], table[i*w+j+1])
			}
		}
	}

	out := make([]string, 0, table[0])
	for i, j := 0, 0; i < n && j < m; {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case table[(i+1)*w+j] >= table[i*w+j+1]:
			i++
		default:
			j++
		}
	}
	return out
}
