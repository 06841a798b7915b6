package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Devices   key.Binding
	Transfers key.Binding
	Settings  key.Binding
	Trust     key.Binding
	Scan      key.Binding
	PickFiles key.Binding
	Toggle    key.Binding
	Jump      key.Binding
	Send      key.Binding
	Pause     key.Binding
	Resume    key.Binding
	Cancel    key.Binding
	Up        key.Binding
	Down      key.Binding
	Accept    key.Binding
	Decline   key.Binding
	Export    key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Devices:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "devices")),
		Transfers: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "transfers")),
		Settings:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Trust:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "trust")),
		Scan:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rescan")),
		PickFiles: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "pick files")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle receiver")),
		Jump:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "jump to device")),
		Send:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Pause:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Resume:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "resume")),
		Cancel:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cancel")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Accept:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "accept")),
		Decline:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "decline")),
		Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export diagnostics")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
