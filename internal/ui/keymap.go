package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit            key.Binding
	Up              key.Binding
	Down            key.Binding
	Left            key.Binding
	Right           key.Binding
	Open            key.Binding
	ToggleDetails   key.Binding
	NewTask         key.Binding
	EditTask        key.Binding
	EditDescription key.Binding
	DeleteTask      key.Binding
	Search          key.Binding
	ClearSearch     key.Binding
	ToggleView      key.Binding
	Grab            key.Binding
	ShiftLeft       key.Binding
	ShiftRight      key.Binding
	Confirm         key.Binding
	Cancel          key.Binding
	Yes             key.Binding
	No              key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:            key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:              key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:            key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:            key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:           key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:            key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		ToggleDetails:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "toggle details")),
		NewTask:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		EditTask:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit task")),
		EditDescription: key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "edit description")),
		DeleteTask:      key.NewBinding(key.WithKeys("D", "delete"), key.WithHelp("D", "delete task")),
		Search:          key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ClearSearch:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear search")),
		ToggleView:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		Grab:            key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "grab/drop")),
		ShiftLeft:       key.NewBinding(key.WithKeys("H", "shift+left"), key.WithHelp("H", "move left")),
		ShiftRight:      key.NewBinding(key.WithKeys("L", "shift+right"), key.WithHelp("L", "move right")),
		Confirm:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Yes:             key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		No:              key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "no")),
	}
}
