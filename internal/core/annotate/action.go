package annotate

// Action is the closed union of state transitions. Every mutation of State
// is expressed as exactly one of the variants below and applied through
// Apply; there is no other write path.
type Action interface {
	isAction()
}

// SetContent replaces the document content verbatim. Highlights and comments
// are untouched; ranges stranded past the new end of content are clamped
// lazily by Segments.
type SetContent struct {
	Content string
}

// AddHighlight appends a highlight. The range is not validated and the id is
// not checked for uniqueness; callers that need a unique range use
// ResolveCitation.
type AddHighlight struct {
	Highlight Highlight
}

// RemoveHighlight removes the highlight with the given id and every comment
// attached to it.
type RemoveHighlight struct {
	ID string
}

// ClearHighlights removes all highlights and, with them, all comments.
type ClearHighlights struct{}

// AddComment appends a comment. The referenced highlight is not required to
// exist.
type AddComment struct {
	Comment Comment
}

// RemoveComment removes a single comment by id.
type RemoveComment struct {
	ID string
}

// AddMessage appends a transcript entry.
type AddMessage struct {
	Message Message
}

// ClearMessages empties the transcript.
type ClearMessages struct{}

// SetScrollTarget sets the one-shot scroll cursor. An empty id clears it.
type SetScrollTarget struct {
	ID string
}

// SetFocus sets the sticky focus cursor. An empty id clears it.
type SetFocus struct {
	ID string
}

// SetLoading sets the advisory busy flag consumers use to disable input
// while an assistant response is in flight.
type SetLoading struct {
	Loading bool
}

// Reset returns the engine to its initial empty state.
type Reset struct{}

func (SetContent) isAction()      {}
func (AddHighlight) isAction()    {}
func (RemoveHighlight) isAction() {}
func (ClearHighlights) isAction() {}
func (AddComment) isAction()      {}
func (RemoveComment) isAction()   {}
func (AddMessage) isAction()      {}
func (ClearMessages) isAction()   {}
func (SetScrollTarget) isAction() {}
func (SetFocus) isAction()        {}
func (SetLoading) isAction()      {}
func (Reset) isAction()           {}
