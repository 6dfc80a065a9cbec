package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	AddVertex  key.Binding
	MoveVertex key.Binding
	AddEdge    key.Binding
	Undo       key.Binding
	Redo       key.Binding
	Cancel     key.Binding
	Erase      key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Click      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		AddVertex:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add vertex")),
		MoveVertex: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "move vertex")),
		AddEdge:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "add edge")),
		Undo:       key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo:       key.NewBinding(key.WithKeys("ctrl+y", "ctrl+shift+z"), key.WithHelp("ctrl+y", "redo")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Erase:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "erase")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Click:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "click")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.AddVertex, k.MoveVertex, k.AddEdge, k.Erase, k.Undo, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.AddVertex, k.MoveVertex, k.AddEdge, k.Erase},
		{k.Up, k.Down, k.Left, k.Right, k.Click},
		{k.Undo, k.Redo, k.Cancel},
		{k.Help, k.Quit},
	}
}
