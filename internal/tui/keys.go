package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	MoveUp       key.Binding
	MoveDown     key.Binding
	MovePrevLane key.Binding
	MoveNextLane key.Binding
	Detail       key.Binding
	Reload       key.Binding
	Cancel       key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "select up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "select down")),
		MoveUp:       key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("K", "move card up")),
		MoveDown:     key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("J", "move card down")),
		MovePrevLane: key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "move to prev lane")),
		MoveNextLane: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "move to next lane")),
		Detail:       key.NewBinding(key.WithKeys("enter", "d"), key.WithHelp("enter", "toggle detail")),
		Reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func helpLine() string {
	return "drag: hold + move mouse  ·  ↑/↓ select  ·  J/K/H/L move  ·  enter detail  ·  r reload  ·  q quit"
}
