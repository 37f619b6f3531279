package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "readme.md", "# readme")
	writeFile(t, root, "notes/plan.md", "plan")
	writeFile(t, root, "notes/raw.txt", "raw")
	writeFile(t, root, "notes/skip.json", "{}")

	docs, err := Discover(root, []string{"**/*.md", "**/*.txt"})
	require.NoError(t, err)

	rels := make([]string, 0, len(docs))
	for _, d := range docs {
		rels = append(rels, d.RelPath)
	}
	assert.ElementsMatch(t, []string{"readme.md", "notes/plan.md", "notes/raw.txt"}, rels)
}

func TestDiscover_MissingRoot(t *testing.T) {
	docs, err := Discover(filepath.Join(t.TempDir(), "missing"), []string{"**/*.md"})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoadAndHash(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "doc.md", "hello")

	doc, err := Load(filepath.Join(root, "doc.md"))
	require.NoError(t, err)

	assert.Equal(t, "hello", doc.Content)
	first := doc.Hash()
	assert.Len(t, first, 64)

	// Hash tracks content.
	writeFile(t, root, "doc.md", "changed")
	content, err := doc.Reload()
	require.NoError(t, err)
	assert.Equal(t, "changed", content)
	assert.NotEqual(t, first, doc.Hash())
}
