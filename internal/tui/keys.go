package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Open   key.Binding
	Close  key.Binding
	Send   key.Binding
	Scroll key.Binding
	Exit   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Open:   key.NewBinding(key.WithKeys("enter", " ", "o"), key.WithHelp("enter", "open chat")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Send:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Scroll: key.NewBinding(key.WithKeys("pgup", "pgdown", "up", "down"), key.WithHelp("↑/↓", "scroll")),
		Exit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) LauncherHelp() []key.Binding {
	return []key.Binding{k.Open, k.Exit}
}

func (k keyMap) PanelHelp() []key.Binding {
	return []key.Binding{k.Send, k.Scroll, k.Close}
}
