package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the progress view.
type KeyMap struct {
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "stop"),
		),
	}
}

// HelpText returns a formatted help string.
func (k KeyMap) HelpText() string {
	return k.Quit.Help().Key + " " + k.Quit.Help().Desc
}
