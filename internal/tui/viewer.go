package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/colonyops/margin/internal/core/annotate"
	"github.com/colonyops/margin/internal/core/styles"
)

// Viewer renders the segmented document into a viewport and knows how to
// locate a highlight's line for scroll requests.
type Viewer struct {
	viewport viewport.Model
	width    int
	height   int

	// ordered ids of the highlights as they appear in the document,
	// rebuilt on every render; selection cycles through this list.
	ordered  []string
	selected int
}

// NewViewer creates a viewer with a zero-size viewport; SetSize must be
// called before rendering.
func NewViewer() Viewer {
	return Viewer{viewport: viewport.New(0, 0), selected: -1}
}

// SetSize updates the viewport dimensions.
func (v *Viewer) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = height
}

// SelectedHighlight returns the id of the currently selected highlight, or
// empty when none is selected.
func (v *Viewer) SelectedHighlight() string {
	if v.selected < 0 || v.selected >= len(v.ordered) {
		return ""
	}
	return v.ordered[v.selected]
}

// CycleSelection moves the selection forward or backward through the
// highlights in document order.
func (v *Viewer) CycleSelection(delta int) {
	if len(v.ordered) == 0 {
		v.selected = -1
		return
	}
	v.selected = (v.selected + delta + len(v.ordered)) % len(v.ordered)
}

// Refresh recomputes the viewport content from the current state. Dimming
// follows focus mode: everything not belonging to the focused highlight is
// de-emphasized.
func (v *Viewer) Refresh(s annotate.State) {
	segs := annotate.Segments(s.Content, s.Highlights)

	v.ordered = orderedHighlightIDs(segs)
	if v.selected >= len(v.ordered) {
		v.selected = len(v.ordered) - 1
	}

	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(renderSegment(seg, s, v.SelectedHighlight()))
	}
	v.viewport.SetContent(b.String())
}

// ScrollTo moves the viewport so the first line of the given highlight is
// visible. It reports whether the highlight was located; a dangling id is
// not an error, the request just stays pending.
func (v *Viewer) ScrollTo(s annotate.State, id string) bool {
	h, ok := s.HighlightByID(id)
	if !ok {
		return false
	}
	start := min(max(h.Start, 0), len(s.Content))
	line := strings.Count(s.Content[:start], "\n")
	v.viewport.SetYOffset(line)
	return true
}

// LineUp and LineDown expose plain scrolling.
func (v *Viewer) LineUp(n int)   { v.viewport.LineUp(n) }
func (v *Viewer) LineDown(n int) { v.viewport.LineDown(n) }

// View renders the viewport.
func (v *Viewer) View() string {
	return v.viewport.View()
}

// orderedHighlightIDs returns the distinct highlight ids in the order their
// first segment appears.
func orderedHighlightIDs(segs []annotate.Segment) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, seg := range segs {
		if seg.Highlight == nil || seen[seg.Highlight.ID] {
			continue
		}
		seen[seg.Highlight.ID] = true
		ids = append(ids, seg.Highlight.ID)
	}
	return ids
}

// renderSegment styles one segment. Styles are applied per line so that
// background fills don't bleed across the segment's newlines.
func renderSegment(seg annotate.Segment, s annotate.State, selectedID string) string {
	style := segmentStyle(seg, s, selectedID)

	lines := strings.Split(seg.Text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func segmentStyle(seg annotate.Segment, s annotate.State, selectedID string) styleRenderer {
	if seg.Highlight == nil {
		if annotate.IsFocusMode(s) {
			return styles.Dimmed
		}
		return plainStyle{}
	}

	h := *seg.Highlight
	switch {
	case annotate.IsFocused(s, h.ID):
		return styles.FocusedHighlight(h.Color)
	case annotate.IsFocusMode(s):
		return styles.Dimmed
	case h.ID == selectedID:
		return styles.Highlight(h.Color).Bold(true)
	default:
		return styles.Highlight(h.Color)
	}
}

// styleRenderer is the subset of lipgloss.Style the viewer needs, letting
// plain text skip styling entirely.
type styleRenderer interface {
	Render(...string) string
}

type plainStyle struct{}

func (plainStyle) Render(strs ...string) string {
	return strings.Join(strs, " ")
}
