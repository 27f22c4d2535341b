package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalafut/textdiff"
)

func TestLoad(t *testing.T) {
	t.Run("no path gives defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "textdiff.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
compare:
  view: inline
  ignore_whitespace: true
  context: 2
server:
  addr: "127.0.0.1:9000"
  compare_timeout: 3s
logging:
  level: debug
  format: json
`), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "inline", cfg.Compare.View)
		assert.Equal(t, 2, cfg.Compare.Context)
		assert.Equal(t, textdiff.DefaultWordPairLimit, cfg.Compare.WordPairLimit)
		assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
		assert.Equal(t, 3*time.Second, cfg.Server.CompareTimeout)
		assert.Equal(t, int64(8), cfg.Server.MaxConcurrent)
		assert.Equal(t, "json", cfg.Logging.Format)

		assert.Equal(t, textdiff.Options{IgnoreWhitespace: true, ViewMode: textdiff.Inline}, cfg.Compare.Options())
		assert.Len(t, cfg.Compare.FuncOptions(), 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestParse(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		cfg, err := Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	type TestCase struct {
		Name string
		YAML string
		Err  string
	}

	for _, tc := range []TestCase{
		{"unknown key", "compare:\n  colour: always\n", "field colour not found"},
		{"bad view", "compare:\n  view: diagonal\n", "compare.view"},
		{"negative context", "compare:\n  context: -1\n", "compare.context"},
		{"zero pair limit", "compare:\n  word_pair_limit: 0\n", "compare.word_pair_limit"},
		{"bad color", "compare:\n  color: sometimes\n", "compare.color"},
		{"bad format", "logging:\n  format: xml\n", "logging.format"},
		{"bad concurrency", "server:\n  max_concurrent: 0\n", "server.max_concurrent"},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			_, err := Parse([]byte(tc.YAML))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.Err)
		})
	}
}
