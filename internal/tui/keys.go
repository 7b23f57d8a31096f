package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Undo   key.Binding
	Clear  key.Binding
	Filter key.Binding
	Search key.Binding
	Theme  key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done/pending")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Undo:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Clear:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear done")),
		Filter: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "all/completed/pending")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) short() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Edit, k.Delete, k.Undo, k.Filter, k.Search}
}

func (k keyMap) full() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Edit, k.Delete, k.Undo, k.Clear, k.Filter, k.Search, k.Theme}
}
