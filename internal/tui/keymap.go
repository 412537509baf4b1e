package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the TUI key bindings. Printable keys are reserved for the
// expression input, so every binding uses a control or navigation key.
type KeyMap struct {
	Submit    key.Binding
	Prev      key.Binding
	Next      key.Binding
	NextWidth key.Binding
	PrevWidth key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Clear     key.Binding
	Cancel    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "evaluate"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous input"),
		),
		Next: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next input"),
		),
		NextWidth: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next width"),
		),
		PrevWidth: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous width"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear history"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel search"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// footerBindings are the bindings listed in the footer, in display order.
func (k KeyMap) footerBindings() []key.Binding {
	return []key.Binding{k.Submit, k.NextWidth, k.Prev, k.Clear, k.Help, k.Quit}
}
