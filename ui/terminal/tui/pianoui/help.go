package pianoui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Play key.Binding
	Help key.Binding
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	Play: key.NewBinding(
		key.WithKeys("a", "s", "d", "f", "g", "h", "j", "k"),
		key.WithHelp("a-k", "play C4 to C5"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}
