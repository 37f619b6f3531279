// Package document handles discovery and loading of reviewable documents.
package document

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// Document is a reviewable file.
type Document struct {
	Path    string // absolute path
	RelPath string // relative to the discovery root
	ModTime time.Time
	Content string
}

// Load reads a single document from disk.
func Load(path string) (Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Document{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Document{}, err
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return Document{}, err
	}
	return Document{
		Path:    abs,
		RelPath: filepath.Base(abs),
		ModTime: info.ModTime(),
		Content: string(content),
	}, nil
}

// Reload re-reads the document content from disk, returning the new content.
func (d *Document) Reload() (string, error) {
	content, err := os.ReadFile(d.Path)
	if err != nil {
		return "", err
	}
	d.Content = string(content)
	return d.Content, nil
}

// Hash returns the sha256 hex digest of the document content, used to key
// persisted annotation sessions to the exact text they were made against.
func (d Document) Hash() string {
	sum := sha256.Sum256([]byte(d.Content))
	return hex.EncodeToString(sum[:])
}

// Discover walks root and returns documents whose root-relative path matches
// any of the doublestar globs, sorted by modification time (newest first).
// Content is not loaded; call Load on the chosen document.
func Discover(root string, globs []string) ([]Document, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absRoot); os.IsNotExist(err) {
		return []Document{}, nil
	}

	var docs []Document
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if !matchesAny(relPath, globs) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		docs = append(docs, Document{
			Path:    path,
			RelPath: relPath,
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].ModTime.After(docs[j].ModTime)
	})

	return docs, nil
}

func matchesAny(relPath string, globs []string) bool {
	for _, g := range globs {
		// Invalid patterns are rejected at config validation; a match error
		// here just means no match.
		if ok, err := doublestar.Match(g, relPath); err == nil && ok {
			return true
		}
	}
	return false
}
