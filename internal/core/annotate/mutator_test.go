package annotate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_SetContent(t *testing.T) {
	s := State{
		Content:    "old",
		Highlights: []Highlight{{ID: "h1", Start: 0, End: 100}},
	}

	next := Apply(s, SetContent{Content: "new content"})

	assert.Equal(t, "new content", next.Content)
	// Content replacement leaves highlights alone; clamping is lazy.
	assert.Equal(t, s.Highlights, next.Highlights)
}

func TestApply_RemoveHighlight_CascadesComments(t *testing.T) {
	s := State{
		Highlights: []Highlight{
			{ID: "h1", Start: 0, End: 5},
			{ID: "h2", Start: 10, End: 15},
		},
		Comments: []Comment{
			{ID: "c1", HighlightID: "h1", Text: "first"},
			{ID: "c2", HighlightID: "h2", Text: "second"},
			{ID: "c3", HighlightID: "h1", Text: "third"},
		},
	}

	next := Apply(s, RemoveHighlight{ID: "h1"})

	require.Len(t, next.Highlights, 1)
	assert.Equal(t, "h2", next.Highlights[0].ID)

	// Exactly the comments referencing h1 are gone, no others.
	require.Len(t, next.Comments, 1)
	assert.Equal(t, "c2", next.Comments[0].ID)
}

func TestApply_RemoveHighlight_UnknownIDIsNoop(t *testing.T) {
	s := State{
		Highlights: []Highlight{{ID: "h1", Start: 0, End: 5}},
		Comments:   []Comment{{ID: "c1", HighlightID: "h1"}},
	}

	next := Apply(s, RemoveHighlight{ID: "nope"})

	assert.Len(t, next.Highlights, 1)
	assert.Len(t, next.Comments, 1)
}

func TestApply_ClearHighlights_ClearsComments(t *testing.T) {
	s := State{
		Highlights: []Highlight{{ID: "h1"}, {ID: "h2"}},
		Comments:   []Comment{{ID: "c1", HighlightID: "h1"}},
		Messages:   []Message{{ID: "m1", Role: RoleUser}},
	}

	next := Apply(s, ClearHighlights{})

	assert.Empty(t, next.Highlights)
	assert.Empty(t, next.Comments)
	// Transcript is untouched.
	assert.Len(t, next.Messages, 1)
}

func TestApply_AddComment_AllowsDanglingReference(t *testing.T) {
	next := Apply(State{}, AddComment{Comment: Comment{ID: "c1", HighlightID: "ghost"}})

	require.Len(t, next.Comments, 1)
	assert.Equal(t, "ghost", next.Comments[0].HighlightID)
}

func TestApply_RemoveComment(t *testing.T) {
	s := State{
		Highlights: []Highlight{{ID: "h1", Start: 0, End: 5}},
		Comments: []Comment{
			{ID: "c1", HighlightID: "h1", Text: "keep"},
			{ID: "c2", HighlightID: "h1", Text: "drop"},
		},
	}

	next := Apply(s, RemoveComment{ID: "c2"})

	// Only the named comment goes; the highlight stays.
	require.Len(t, next.Comments, 1)
	assert.Equal(t, "c1", next.Comments[0].ID)
	assert.Len(t, next.Highlights, 1)

	assert.Equal(t, next.Comments, next.CommentsFor("h1"))
	assert.Empty(t, next.CommentsFor("h2"))
}

func TestApply_AddHighlight_AppendsWithoutDedup(t *testing.T) {
	h := Highlight{ID: "h1", Start: 0, End: 5}

	s := Apply(State{}, AddHighlight{Highlight: h})
	s = Apply(s, AddHighlight{Highlight: h})

	// The mutator is permissive; uniqueness is the caller's concern.
	assert.Len(t, s.Highlights, 2)
}

func TestApply_Transcript(t *testing.T) {
	s := Apply(State{}, AddMessage{Message: Message{ID: "m1", Role: RoleUser, Content: "hi", CreatedAt: time.Now()}})
	s = Apply(s, AddMessage{Message: Message{ID: "m2", Role: RoleAssistant, Content: "hello"}})

	require.Len(t, s.Messages, 2)
	assert.Equal(t, "m1", s.Messages[0].ID)
	assert.Equal(t, "m2", s.Messages[1].ID)

	s = Apply(s, ClearMessages{})
	assert.Empty(t, s.Messages)
}

func TestApply_Cursors(t *testing.T) {
	s := Apply(State{}, SetScrollTarget{ID: "h1"})
	assert.Equal(t, "h1", s.ScrollTo)

	s = Apply(s, SetFocus{ID: "h1"})
	assert.Equal(t, "h1", s.Focused)

	// Both cursors may be set simultaneously during a transition.
	assert.Equal(t, "h1", s.ScrollTo)

	s = Apply(s, SetScrollTarget{})
	assert.Empty(t, s.ScrollTo)
	assert.Equal(t, "h1", s.Focused)
}

func TestApply_LoadingAndReset(t *testing.T) {
	s := Apply(State{Content: "doc"}, SetLoading{Loading: true})
	assert.True(t, s.Loading)

	s = Apply(s, Reset{})
	assert.Equal(t, State{}, s)
}

func TestApply_ReturnsFreshSlices(t *testing.T) {
	s := State{Highlights: []Highlight{{ID: "h1"}}}

	next := Apply(s, AddHighlight{Highlight: Highlight{ID: "h2"}})

	// The previous snapshot must be untouched.
	require.Len(t, s.Highlights, 1)
	require.Len(t, next.Highlights, 2)
	next.Highlights[0].ID = "mutated"
	assert.Equal(t, "h1", s.Highlights[0].ID)
}

func TestStore_DispatchSerializes(t *testing.T) {
	store := NewStore()
	store.Dispatch(SetContent{Content: "doc"})
	store.Dispatch(AddHighlight{Highlight: Highlight{ID: "h1", Start: 0, End: 3}})

	got := store.State()
	assert.Equal(t, "doc", got.Content)
	require.Len(t, got.Highlights, 1)
}

func TestNewStoreFrom_Snapshot(t *testing.T) {
	snap := Snapshot{
		Content:    "doc",
		Highlights: []Highlight{{ID: "h1", Start: 0, End: 3, Color: ColorBlue}},
		Comments:   []Comment{{ID: "c1", HighlightID: "h1", Text: "note"}},
		Messages:   []Message{{ID: "m1", Role: RoleUser, Content: "hi"}},
	}

	store := NewStoreFrom(snap)
	got := store.State()

	assert.Equal(t, "doc", got.Content)
	assert.Len(t, got.Highlights, 1)
	assert.Len(t, got.Comments, 1)
	assert.Len(t, got.Messages, 1)
	assert.Empty(t, got.ScrollTo)
	assert.Empty(t, got.Focused)
	assert.False(t, got.Loading)
}
