package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestScroll_DanglingIDLeavesFocusUnchanged(t *testing.T) {
	s := State{
		Highlights: []Highlight{{ID: "h1", Start: 0, End: 3}},
		Focused:    "h1",
	}

	next := Apply(s, RequestScroll("missing"))

	assert.Equal(t, "missing", next.ScrollTo)
	assert.Equal(t, "h1", next.Focused)
	assert.True(t, IsScrollPending(next, "missing"))

	// The viewer never locates the element; clearing the target is the only
	// way out and must also be harmless.
	cleared := Apply(next, SetScrollTarget{})
	assert.False(t, IsScrollPending(cleared, "missing"))
	assert.Equal(t, "h1", cleared.Focused)
}

func TestToggleFocus(t *testing.T) {
	s := State{}

	s = Apply(s, ToggleFocus(s, "h1"))
	assert.True(t, IsFocused(s, "h1"))
	assert.True(t, IsFocusMode(s))

	// Toggling the focused highlight clears focus.
	s = Apply(s, ToggleFocus(s, "h1"))
	assert.False(t, IsFocused(s, "h1"))
	assert.False(t, IsFocusMode(s))

	// Toggling a different highlight moves focus to it.
	s = Apply(s, ToggleFocus(s, "h1"))
	s = Apply(s, ToggleFocus(s, "h2"))
	assert.True(t, IsFocused(s, "h2"))
	assert.False(t, IsFocused(s, "h1"))
}

func TestClearFocus(t *testing.T) {
	s := State{Focused: "h1", ScrollTo: "h1"}

	s = Apply(s, ClearFocus())

	assert.False(t, IsFocusMode(s))
	// Dismissal clears focus only; the scroll target is owned by the scroll
	// sequencing.
	assert.Equal(t, "h1", s.ScrollTo)
}

func TestFocusPredicates_EmptyID(t *testing.T) {
	s := State{}

	assert.False(t, IsScrollPending(s, ""))
	assert.False(t, IsFocused(s, ""))
	assert.False(t, IsFocusMode(s))
}
