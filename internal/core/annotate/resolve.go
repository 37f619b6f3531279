package annotate

import "github.com/colonyops/margin/pkg/randid"

// NewHighlightID returns a fresh id for a synthesized highlight.
func NewHighlightID() string {
	return "hl-" + randid.Generate(8)
}

// ResolveCitation maps an activated citation to a highlight id and the
// actions to dispatch for it.
//
// If a highlight whose range exactly equals the citation already exists its
// id is reused, so activating the same citation twice never creates a second
// highlight. Otherwise a new highlight with the given color is created. The
// returned actions always end by setting both the scroll target and the
// focus to the resolved id.
func ResolveCitation(s State, c Citation, color Color) (string, []Action) {
	for _, h := range s.Highlights {
		if h.Start == c.Start && h.End == c.End {
			return h.ID, []Action{
				SetScrollTarget{ID: h.ID},
				SetFocus{ID: h.ID},
			}
		}
	}

	h := Highlight{
		ID:    NewHighlightID(),
		Start: c.Start,
		End:   c.End,
		Color: color,
	}
	return h.ID, []Action{
		AddHighlight{Highlight: h},
		SetScrollTarget{ID: h.ID},
		SetFocus{ID: h.ID},
	}
}
