package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings for the UI.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Back     key.Binding
	Quit     key.Binding
	Help     key.Binding
	Refresh  key.Binding

	Browse    key.Binding
	Favorites key.Binding
	CartView  key.Binding
	Auth      key.Binding
	Sell      key.Binding

	Search      key.Binding
	SortField   key.Binding
	SortOrder   key.Binding
	Category    key.Binding
	MaxPrice    key.Binding
	ClearFilter key.Binding

	Favorite key.Binding
	Like     key.Binding
	AddCart  key.Binding
	Remove   key.Binding
	More     key.Binding
	Less     key.Binding
	Checkout key.Binding
	Comment  key.Binding
	Theme    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Browse: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "browse"),
		),
		Favorites: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "favorites"),
		),
		CartView: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "cart"),
		),
		Auth: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "account"),
		),
		Sell: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "sell"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		SortField: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort field"),
		),
		SortOrder: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "sort order"),
		),
		Category: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "category"),
		),
		MaxPrice: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "max price"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "clear filters"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Like: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "like"),
		),
		AddCart: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add to cart"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
		More: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "more"),
		),
		Less: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "fewer"),
		),
		Checkout: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "checkout"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "theme"),
		),
	}
}
