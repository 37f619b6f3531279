package config

import (
	"fmt"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

var validColors = map[string]bool{
	"yellow": true,
	"blue":   true,
	"green":  true,
	"pink":   true,
}

// Validate performs structural validation of the configuration.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("assistant.citation_color", c.Assistant.CitationColor, citationColor),
		criterio.Run("tui.scroll_settle", c.TUI.ScrollSettle, nonNegative),
		c.validateGlobs(),
	)
}

func citationColor(color string) error {
	if color == "" {
		return nil
	}
	if !validColors[color] {
		return fmt.Errorf("unknown color %q, want yellow, blue, green, or pink", color)
	}
	return nil
}

func nonNegative(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func (c *Config) validateGlobs() error {
	var errs criterio.FieldErrorsBuilder
	for i, g := range c.Documents.Globs {
		if !doublestar.ValidatePattern(g) {
			errs = errs.Append(fmt.Sprintf("documents.globs[%d]", i), fmt.Errorf("invalid pattern %q", g))
		}
	}
	return errs.ToError()
}
