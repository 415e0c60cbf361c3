package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Overview key.Binding
	Clients  key.Binding
	Entries  key.Binding
	PrevTab  key.Binding
	NextTab  key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding

	SortMargin  key.Binding
	SortRevenue key.Binding
	SortSpent   key.Binding

	Refresh     key.Binding
	AutoRefresh key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Overview: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "overview")),
		Clients:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clients")),
		Entries:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "entries")),
		PrevTab:  key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←", "previous tab")),
		NextTab:  key.NewBinding(key.WithKeys("right", "tab"), key.WithHelp("→", "next tab")),

		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "client entries")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),

		SortMargin:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "sort by margin")),
		SortRevenue: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "sort by revenue")),
		SortSpent:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by spent")),

		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		AutoRefresh: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "toggle auto-refresh")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Overview, k.Clients, k.Entries, k.PrevTab, k.NextTab},
		{k.Up, k.Down, k.Select, k.Back},
		{k.SortMargin, k.SortRevenue, k.SortSpent},
		{k.Refresh, k.AutoRefresh, k.Help, k.Quit},
	}
}
