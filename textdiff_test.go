package textdiff

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"
)

func Test_textdiff(t *testing.T) {
	t.Run("changed line", func(t *testing.T) {
		res, err := Run("a\nb\nc", "a\nx\nc", Options{})
		require.NoError(t, err)

		assert.Equal(t, []Kind{KindEqual, KindChanged, KindEqual}, kinds(res.Hunks))
		assert.Equal(t, Stats{Changed: 1}, res.Stats)
		assert.Equal(t, "  a\n- b\n+ x\n  c", res.PlainText)
		assert.False(t, res.Identical())
	})

	t.Run("appended line", func(t *testing.T) {
		res, err := Run("a\nb", "a\nb\nc", Options{})
		require.NoError(t, err)

		assert.Equal(t, []Kind{KindEqual, KindEqual, KindAdded}, kinds(res.Hunks))
		assert.Equal(t, Stats{Added: 1}, res.Stats)
	})

	t.Run("ignore whitespace keeps original text", func(t *testing.T) {
		res, err := Run("  x  ", "x", Options{IgnoreWhitespace: true})
		require.NoError(t, err)

		require.Len(t, res.Hunks, 1)
		assert.Equal(t, KindEqual, res.Hunks[0].Kind)
		assert.Equal(t, "  x  ", res.Hunks[0].LeftLine)
		assert.Equal(t, "x", res.Hunks[0].RightLine)
		assert.True(t, res.Identical())

		res, err = Run("  x  ", "x", Options{})
		require.NoError(t, err)
		assert.Equal(t, Stats{Changed: 1}, res.Stats)
	})

	t.Run("structured formatting differences vanish", func(t *testing.T) {
		res, err := Run(`{"a":1}`, "{\n    \"a\" :  1\n}\n", Options{Structured: true})
		require.NoError(t, err)

		assert.Equal(t, 0, res.Stats.Total())
		assert.Equal(t, `<div class="no-diff">No differences</div>`, res.HTML)
	})

	t.Run("structured error names the side", func(t *testing.T) {
		_, err := Run(`{"a":1}`, `{"a":`, Options{Structured: true})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedStructuredInput))

		var sErr *StructuredInputError
		require.True(t, errors.As(err, &sErr))
		assert.Equal(t, Right, sErr.Side)
		assert.True(t, strings.HasPrefix(err.Error(), "right: "))

		_, err = Run(`nope`, `also nope`, Options{Structured: true})
		require.True(t, errors.As(err, &sErr))
		assert.Equal(t, Left, sErr.Side)
	})

	t.Run("both empty", func(t *testing.T) {
		res, err := Run("", "", Options{})
		require.NoError(t, err)

		assert.NotNil(t, res.Hunks)
		assert.Empty(t, res.Hunks)
		assert.True(t, res.View.Identical)
		assert.Equal(t, "", res.PlainText)
	})

	t.Run("one side empty", func(t *testing.T) {
		res, err := Run("", "a\nb", Options{})
		require.NoError(t, err)
		assert.Equal(t, []Kind{KindChanged, KindAdded}, kinds(res.Hunks))
	})

	t.Run("plain text does not depend on view mode", func(t *testing.T) {
		sbs, err := Run("a\nb\nc\n", "a\nB\nc\nd\n", Options{ViewMode: SideBySide})
		require.NoError(t, err)
		inline, err := Run("a\nb\nc\n", "a\nB\nc\nd\n", Options{ViewMode: Inline})
		require.NoError(t, err)

		assert.Equal(t, sbs.PlainText, inline.PlainText)
		assert.Equal(t, sbs.Stats, inline.Stats)
		assert.NotEqual(t, sbs.HTML, inline.HTML)
	})

	t.Run("large identical input", func(t *testing.T) {
		var b strings.Builder
		for i := 0; i < 10000; i++ {
			fmt.Fprintf(&b, "line number %d\n", i)
		}
		text := b.String()

		start := time.Now()
		res, err := Run(text, text, Options{})
		require.NoError(t, err)

		assert.Less(t, time.Since(start), 2*time.Second)
		assert.Len(t, res.Hunks, 10001)
		assert.Equal(t, []Kind{KindEqual}, uniqueKinds(res.Hunks))
		assert.Equal(t, `<div class="no-diff">No differences</div>`, res.HTML)
	})

	t.Run("logs oversized word alignment", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		long := strings.Repeat("w ", 400)

		_, err := Run(long, long+"x", Options{}, WithLogger(zap.New(core)))
		require.NoError(t, err)

		assert.Equal(t, 1, logs.FilterMessage("word alignment skipped").Len())
		assert.Equal(t, 1, logs.FilterMessage("aligned").Len())
	})
}

func TestRun_concurrent(t *testing.T) {
	defer goleak.VerifyNone(t)

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			left := fmt.Sprintf("shared\nleft %d\nshared", i)
			right := fmt.Sprintf("shared\nright %d\nshared", i)
			res, err := Run(left, right, Options{ViewMode: ViewMode(i % 2)})
			if err != nil {
				return err
			}
			want := fmt.Sprintf("  shared\n- left %d\n+ right %d\n  shared", i, i)
			if res.PlainText != want {
				return fmt.Errorf("run %d: got %q, want %q", i, res.PlainText, want)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func kinds(hunks []Hunk) []Kind {
	out := make([]Kind, len(hunks))
	for i, h := range hunks {
		out[i] = h.Kind
	}
	return out
}

func uniqueKinds(hunks []Hunk) []Kind {
	var out []Kind
	seen := map[Kind]bool{}
	for _, h := range hunks {
		if !seen[h.Kind] {
			seen[h.Kind] = true
			out = append(out, h.Kind)
		}
	}
	return out
}
