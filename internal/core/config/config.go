// Package config handles configuration loading and validation for margin.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Assistant Assistant `yaml:"assistant"`
	Documents Documents `yaml:"documents"`
	TUI       TUI       `yaml:"tui"`
	DataDir   string    `yaml:"-"` // set by caller, not from config file
}

// Assistant configures the external assistant the chat pane talks to.
type Assistant struct {
	// Command is the external command that streams replies on stdout; the
	// prompt is written to its stdin. Empty disables the chat send path.
	Command []string `yaml:"command"`
	// CitationColor is the highlight color given to highlights synthesized
	// from citations: yellow, blue, green, or pink.
	CitationColor string `yaml:"citation_color"`
}

// Documents configures document discovery.
type Documents struct {
	// Globs are doublestar patterns, relative to the directory being
	// opened, that select reviewable documents.
	Globs []string `yaml:"globs"`
}

// TUI holds interface tuning knobs.
type TUI struct {
	// ScrollSettle is how long the viewer keeps the scroll target set after
	// scrolling to a highlight, letting the transition finish before the
	// one-shot cursor is cleared.
	ScrollSettle time.Duration `yaml:"scroll_settle"`
	// CommentWidth is the max width comments wrap to in the rail.
	CommentWidth int `yaml:"comment_width"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Assistant: Assistant{
			CitationColor: "yellow",
		},
		Documents: Documents{
			Globs: []string{"**/*.md", "**/*.txt"},
		},
		TUI: TUI{
			ScrollSettle: 600 * time.Millisecond,
			CommentWidth: 80,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// A missing config file is not an error; defaults are used.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
