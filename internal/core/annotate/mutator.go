package annotate

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Apply is the single transition function over State. It is pure and total:
// every action produces a defined next state, an unrecognized action is the
// identity, and no action can fail. Changed collections are replaced with
// fresh slices so consumers can rely on reference identity to detect change.
func Apply(s State, a Action) State {
	switch a := a.(type) {
	case SetContent:
		s.Content = a.Content
	case AddHighlight:
		s.Highlights = appendCopy(s.Highlights, a.Highlight)
	case RemoveHighlight:
		highlights := make([]Highlight, 0, len(s.Highlights))
		for _, h := range s.Highlights {
			if h.ID != a.ID {
				highlights = append(highlights, h)
			}
		}
		comments := make([]Comment, 0, len(s.Comments))
		for _, c := range s.Comments {
			if c.HighlightID != a.ID {
				comments = append(comments, c)
			}
		}
		s.Highlights = highlights
		s.Comments = comments
	case ClearHighlights:
		// Comments are meaningless without their highlights.
		s.Highlights = nil
		s.Comments = nil
	case AddComment:
		s.Comments = appendCopy(s.Comments, a.Comment)
	case RemoveComment:
		comments := make([]Comment, 0, len(s.Comments))
		for _, c := range s.Comments {
			if c.ID != a.ID {
				comments = append(comments, c)
			}
		}
		s.Comments = comments
	case AddMessage:
		s.Messages = appendCopy(s.Messages, a.Message)
	case ClearMessages:
		s.Messages = nil
	case SetScrollTarget:
		s.ScrollTo = a.ID
	case SetFocus:
		s.Focused = a.ID
	case SetLoading:
		s.Loading = a.Loading
	case Reset:
		s = State{}
	}
	return s
}

// appendCopy appends v to a fresh copy of in, leaving in untouched for any
// consumer still holding the previous snapshot.
func appendCopy[T any](in []T, v T) []T {
	out := make([]T, len(in), len(in)+1)
	copy(out, in)
	return append(out, v)
}

// Store owns the current State snapshot and serializes all mutations.
// Reads return the snapshot by value; collection slices in a snapshot are
// never mutated after publication.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore returns a store holding the initial empty state.
func NewStore() *Store {
	return &Store{}
}

// NewStoreFrom returns a store seeded from a persisted snapshot.
func NewStoreFrom(snap Snapshot) *Store {
	return &Store{state: FromSnapshot(snap)}
}

// Dispatch applies an action and returns the resulting snapshot.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Apply(s.state, a)
	log.Debug().
		Str("action", fmt.Sprintf("%T", a)).
		Int("highlights", len(s.state.Highlights)).
		Int("comments", len(s.state.Comments)).
		Int("messages", len(s.state.Messages)).
		Msg("annotate: dispatch")
	return s.state
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
