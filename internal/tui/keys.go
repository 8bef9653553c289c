package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	esc     key.Binding
	quit    key.Binding
	newItem key.Binding
	check   key.Binding
	delete  key.Binding
	clear   key.Binding
	undo    key.Binding
	resume  key.Binding
	copy    key.Binding
	refresh key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k")),
	down:    key.NewBinding(key.WithKeys("down", "j")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
	newItem: key.NewBinding(key.WithKeys("n")),
	check:   key.NewBinding(key.WithKeys(" ")),
	delete:  key.NewBinding(key.WithKeys("d")),
	clear:   key.NewBinding(key.WithKeys("x")),
	undo:    key.NewBinding(key.WithKeys("u")),
	resume:  key.NewBinding(key.WithKeys("r")),
	copy:    key.NewBinding(key.WithKeys("c")),
	refresh: key.NewBinding(key.WithKeys("f5", "ctrl+r")),
}
