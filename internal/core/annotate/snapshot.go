package annotate

// Snapshot is the serializable subset of State. The cursors and the loading
// flag are transient view state and deliberately excluded.
type Snapshot struct {
	Content    string      `json:"content"`
	Highlights []Highlight `json:"highlights,omitempty"`
	Comments   []Comment   `json:"comments,omitempty"`
	Messages   []Message   `json:"messages,omitempty"`
}

// Snapshot returns the persistent subset of the state.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		Content:    s.Content,
		Highlights: s.Highlights,
		Comments:   s.Comments,
		Messages:   s.Messages,
	}
}

// FromSnapshot reconstructs engine state from a persisted snapshot. Cursors
// start unset and loading false.
func FromSnapshot(snap Snapshot) State {
	return State{
		Content:    snap.Content,
		Highlights: snap.Highlights,
		Comments:   snap.Comments,
		Messages:   snap.Messages,
	}
}
