package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause   key.Binding
	Victory key.Binding
	Flee    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Pause: key.NewBinding(
		key.WithKeys(" ", "p"),
		key.WithHelp("space", "pause"),
	),
	Victory: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "done"),
	),
	Flee: key.NewBinding(
		key.WithKeys("f", "esc"),
		key.WithHelp("f", "flee"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "save & quit"),
	),
}

func (keys keyMap) bindings() []key.Binding {
	return []key.Binding{keys.Pause, keys.Victory, keys.Flee, keys.Quit}
}
