// Package styles provides shared lipgloss styles for the CLI and TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/margin/internal/core/annotate"
)

// Tokyo Night derived palette.
var (
	ColorMuted   = lipgloss.Color("#565f89")
	ColorText    = lipgloss.Color("#c0caf5")
	ColorAccent  = lipgloss.Color("#7aa2f7")
	ColorError   = lipgloss.Color("#f7768e")
	ColorSurface = lipgloss.Color("#1f2335")
)

var (
	// Subtle renders secondary chrome: separators, line numbers, help text.
	Subtle = lipgloss.NewStyle().Foreground(ColorMuted)

	// Dimmed is applied to everything outside the focused highlight while
	// focus mode is active.
	Dimmed = lipgloss.NewStyle().Foreground(ColorMuted).Faint(true)

	// UserLabel and AssistantLabel prefix transcript entries.
	UserLabel      = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	AssistantLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a")).Bold(true)
)

// highlightStyles maps each highlight color to its rendering. Background
// fills with a dark foreground keep the text readable on dark terminals.
var highlightStyles = map[annotate.Color]lipgloss.Style{
	annotate.ColorYellow: lipgloss.NewStyle().Background(lipgloss.Color("#e0af68")).Foreground(lipgloss.Color("#1a1b26")),
	annotate.ColorBlue:   lipgloss.NewStyle().Background(lipgloss.Color("#7aa2f7")).Foreground(lipgloss.Color("#1a1b26")),
	annotate.ColorGreen:  lipgloss.NewStyle().Background(lipgloss.Color("#9ece6a")).Foreground(lipgloss.Color("#1a1b26")),
	annotate.ColorPink:   lipgloss.NewStyle().Background(lipgloss.Color("#f7768e")).Foreground(lipgloss.Color("#1a1b26")),
}

// Highlight returns the style for a highlight color. Unknown colors fall
// back to the default color's style.
func Highlight(c annotate.Color) lipgloss.Style {
	if s, ok := highlightStyles[c]; ok {
		return s
	}
	return highlightStyles[annotate.DefaultColor]
}

// FocusedHighlight is layered on the focused highlight's segments.
func FocusedHighlight(c annotate.Color) lipgloss.Style {
	return Highlight(c).Bold(true).Underline(true)
}
