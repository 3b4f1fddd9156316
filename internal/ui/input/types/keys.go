package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the normal mode bindings and doubles as the help.KeyMap
type KeyMap struct {
	Search     key.Binding
	Category   key.Binding
	Order      key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	FirstPage  key.Binding
	LastPage   key.Binding
	PageNumber key.Binding
	GotoPage   key.Binding
	Pager      key.Binding
	Clear      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the bindings used by the normal mode
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Category:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "search field")),
		Order:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort order")),
		PrevPage:   key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page")),
		NextPage:   key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
		FirstPage:  key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first page")),
		LastPage:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last page")),
		PageNumber: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "go to page")),
		GotoPage:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "enter page number")),
		Pager:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view all results")),
		Clear:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Category, k.Order, k.PrevPage, k.NextPage, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Clear, k.Category, k.Order},
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage, k.PageNumber, k.GotoPage},
		{k.Pager, k.Help, k.Quit},
	}
}
