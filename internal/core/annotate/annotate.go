package annotate

import "time"

// Color is the fill color of a highlight.
type Color string

// Supported highlight colors.
const (
	ColorYellow Color = "yellow"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorPink   Color = "pink"
)

// DefaultColor is used for highlights synthesized from citations.
const DefaultColor = ColorYellow

// Role identifies the author of a transcript message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Highlight is a named, colored half-open byte range over document content.
type Highlight struct {
	ID    string `json:"id"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Color Color  `json:"color,omitempty"`
}

// Comment is user feedback attached to a highlight. It references the
// highlight by id and is removed when the highlight is removed.
type Comment struct {
	ID          string    `json:"id"`
	HighlightID string    `json:"highlight_id"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
	Resolved    bool      `json:"resolved,omitempty"`
}

// Message is a single transcript entry. The transcript is kept in insertion
// order and never reordered or deduplicated.
type Message struct {
	ID        string     `json:"id"`
	Role      Role       `json:"role"`
	Content   string     `json:"content"`
	Citations []Citation `json:"citations,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// State is one immutable snapshot of the annotation engine.
//
// ScrollTo and Focused hold highlight ids; the empty string means unset.
// Neither is required to reference a live highlight.
type State struct {
	Content    string
	Highlights []Highlight
	Comments   []Comment
	Messages   []Message
	ScrollTo   string
	Focused    string
	Loading    bool
}

// HighlightByID returns the highlight with the given id. The bool reports
// whether it exists; a dangling or empty id is not an error.
func (s State) HighlightByID(id string) (Highlight, bool) {
	if id == "" {
		return Highlight{}, false
	}
	for _, h := range s.Highlights {
		if h.ID == id {
			return h, true
		}
	}
	return Highlight{}, false
}

// CommentsFor returns the comments attached to the given highlight id, in
// insertion order.
func (s State) CommentsFor(highlightID string) []Comment {
	var out []Comment
	for _, c := range s.Comments {
		if c.HighlightID == highlightID {
			out = append(out, c)
		}
	}
	return out
}
