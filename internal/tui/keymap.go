package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the annotation view.
type KeyMap struct {
	NextHighlight key.Binding
	PrevHighlight key.Binding
	ToggleFocus   key.Binding
	Dismiss       key.Binding
	Comment       key.Binding
	Delete        key.Binding
	Search        key.Binding
	NextMatch     key.Binding
	PrevMatch     key.Binding
	AddHighlight  key.Binding
	Chat          key.Binding
	Save          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextHighlight: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next highlight"),
		),
		PrevHighlight: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev highlight"),
		),
		ToggleFocus: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "focus highlight"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete highlight"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "prev match"),
		),
		AddHighlight: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "highlight match"),
		),
		Chat: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "chat"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save session"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
