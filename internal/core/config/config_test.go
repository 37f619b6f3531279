package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "/tmp/data")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/data", cfg.DataDir)
	assert.Equal(t, "yellow", cfg.Assistant.CitationColor)
	assert.Equal(t, 600*time.Millisecond, cfg.TUI.ScrollSettle)
	assert.Equal(t, []string{"**/*.md", "**/*.txt"}, cfg.Documents.Globs)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
assistant:
  command: ["my-model", "--stream"]
  citation_color: blue
tui:
  scroll_settle: 250ms
  comment_width: 60
documents:
  globs: ["docs/**/*.md"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, "/tmp/data")
	require.NoError(t, err)

	assert.Equal(t, []string{"my-model", "--stream"}, cfg.Assistant.Command)
	assert.Equal(t, "blue", cfg.Assistant.CitationColor)
	assert.Equal(t, 250*time.Millisecond, cfg.TUI.ScrollSettle)
	assert.Equal(t, 60, cfg.TUI.CommentWidth)
	assert.Equal(t, []string{"docs/**/*.md"}, cfg.Documents.Globs)
}

func TestValidate_RejectsUnknownColor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Assistant.CitationColor = "mauve"

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs[0].Field, "citation_color")
}

func TestValidate_RejectsBadGlob(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Documents.Globs = []string{"[unclosed"}

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs[0].Field, "globs[0]")
}

func TestValidate_RejectsNegativeSettle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TUI.ScrollSettle = -time.Second

	assert.Error(t, cfg.Validate())
}
