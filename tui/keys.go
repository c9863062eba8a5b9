package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keybindings for the main screen
type KeyMap struct {
	Submit   key.Binding
	Browse   key.Binding
	Clear    key.Binding
	Download key.Binding
	Export   key.Binding
	Up       key.Binding
	Down     key.Binding
	Summary  key.Binding
	Help     key.Binding
	Quit     key.Binding
	Cancel   key.Binding
}

// DefaultKeyMap returns default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter/s", "extract"),
		),
		Browse: key.NewBinding(
			key.WithKeys("b", "o"),
			key.WithHelp("b", "browse"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear file"),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "download output"),
			key.WithDisabled(),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export yaml"),
			key.WithDisabled(),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Summary: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "session summary"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Browse, k.Download, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Browse, k.Clear},
		{k.Download, k.Export},
		{k.Up, k.Down, k.Summary},
		{k.Help, k.Quit},
	}
}
