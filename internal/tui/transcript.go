package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/colonyops/margin/internal/core/annotate"
	"github.com/colonyops/margin/internal/core/styles"
)

// Transcript renders the conversation and the comment rail for the right
// pane. Assistant messages are rendered as markdown; each message's
// citations are listed as numbered sources the user can activate.
type Transcript struct {
	width    int
	renderer *glamour.TermRenderer
}

// NewTranscript creates a transcript renderer. Glamour setup is deferred to
// SetSize, which knows the wrap width.
func NewTranscript() Transcript {
	return Transcript{}
}

// SetSize updates the wrap width and rebuilds the markdown renderer.
func (tr *Transcript) SetSize(width int) {
	tr.width = width
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(max(width-2, 20)),
	)
	if err == nil {
		tr.renderer = r
	}
}

// Render returns the transcript view. pending holds the display text of an
// in-flight assistant reply, shown after the stored messages until the
// stream completes and the message is committed to the transcript.
func (tr *Transcript) Render(s annotate.State, pending string) string {
	var b strings.Builder

	for _, m := range s.Messages {
		b.WriteString(tr.renderMessage(m))
		b.WriteString("\n")
	}

	if pending != "" {
		b.WriteString(styles.AssistantLabel.Render("assistant"))
		b.WriteString("\n")
		b.WriteString(tr.markdown(pending))
		b.WriteString("\n")
	}

	return b.String()
}

func (tr *Transcript) renderMessage(m annotate.Message) string {
	var b strings.Builder

	switch m.Role {
	case annotate.RoleAssistant:
		b.WriteString(styles.AssistantLabel.Render("assistant"))
		b.WriteString("\n")
		b.WriteString(tr.markdown(m.Content))
	default:
		b.WriteString(styles.UserLabel.Render("you"))
		b.WriteString("\n")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}

	for i, c := range m.Citations {
		line := fmt.Sprintf("  [%d] Source %d: bytes %d-%d", i+1, i+1, c.Start, c.End)
		b.WriteString(styles.Subtle.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func (tr *Transcript) markdown(text string) string {
	if tr.renderer == nil {
		return text + "\n"
	}
	out, err := tr.renderer.Render(text)
	if err != nil {
		return text + "\n"
	}
	return strings.TrimRight(out, "\n") + "\n"
}

// RenderComments returns the comment rail. In focus mode only the focused
// highlight's comments stay legible.
func (tr *Transcript) RenderComments(s annotate.State, wrapWidth int) string {
	if len(s.Comments) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.Subtle.Render("comments"))
	b.WriteString("\n")

	for _, c := range s.Comments {
		// Comments whose highlight is gone should already be cascaded
		// away, but render nothing for them rather than trusting it.
		h, ok := s.HighlightByID(c.HighlightID)
		if !ok {
			continue
		}

		marker := "●"
		if c.Resolved {
			marker = "✓"
		}
		line := fmt.Sprintf("%s [%d:%d] %s", marker, h.Start, h.End, wrap(c.Text, wrapWidth))

		if annotate.IsFocusMode(s) && !annotate.IsFocused(s, c.HighlightID) {
			b.WriteString(styles.Dimmed.Render(line))
		} else {
			b.WriteString(styles.Highlight(h.Color).Render(marker) + line[len(marker):])
		}
		b.WriteString("\n")
	}

	return b.String()
}

func wrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}
	return text[:width-1] + "…"
}
