package annotate

import "time"

// DefaultScrollSettle is how long the viewer waits after scrolling to a
// highlight before clearing the scroll target, letting the visual transition
// finish. Configurable via the tui.scroll_settle setting.
const DefaultScrollSettle = 600 * time.Millisecond

// The focus coordinator is a thin state machine over the two cursors:
// ScrollTo is one-shot (set by RequestScroll, cleared by the viewer after it
// scrolls and the settle delay elapses) and Focused is sticky (toggled by
// clicking a highlight, cleared by dismissal). A scroll target naming a
// highlight the viewer cannot locate stays pending with no observable
// effect.

// RequestScroll returns the action that moves the coordinator to
// PendingScroll(id). The viewer reacts by scrolling, dispatching
// SetFocus(id), and clearing the target after the settle delay.
func RequestScroll(id string) Action {
	return SetScrollTarget{ID: id}
}

// ToggleFocus returns the action for clicking a highlight directly: focus it,
// or clear focus if it is already focused.
func ToggleFocus(s State, id string) Action {
	if s.Focused == id {
		return SetFocus{}
	}
	return SetFocus{ID: id}
}

// ClearFocus returns the dismissal action; it unfocuses regardless of
// current state.
func ClearFocus() Action {
	return SetFocus{}
}

// IsScrollPending reports whether a scroll to the given highlight has been
// requested and not yet cleared.
func IsScrollPending(s State, id string) bool {
	return id != "" && s.ScrollTo == id
}

// IsFocused reports whether the given highlight holds focus.
func IsFocused(s State, id string) bool {
	return id != "" && s.Focused == id
}

// IsFocusMode reports whether any highlight is focused. Consumers dim
// everything not belonging to the focused highlight while this is true.
func IsFocusMode(s State) bool {
	return s.Focused != ""
}
