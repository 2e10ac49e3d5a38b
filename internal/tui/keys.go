package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Dashboard     key.Binding
	Clients       key.Binding
	NewClient     key.Binding
	Products      key.Binding
	NewProduct    key.Binding
	Orders        key.Binding
	NewOrder      key.Binding
	Refresh       key.Binding
	Search        key.Binding
	Help          key.Binding
	Quit          key.Binding
	ForceQuit     key.Binding
	NextField     key.Binding
	PrevField     key.Binding
	Up            key.Binding
	Down          key.Binding
	Submit        key.Binding
	Back          key.Binding
	formMode      bool
	searchingMode bool
}

func defaultKeys() keyMap {
	return keyMap{
		Dashboard:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dashboard")),
		Clients:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clients")),
		NewClient:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "new client")),
		Products:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "products")),
		NewProduct: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "new product")),
		Orders:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "orders")),
		NewOrder:   key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "new order")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),
		NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "choose")),
		Down:       key.NewBinding(key.WithKeys("down")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	switch {
	case k.searchingMode:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "keep filter")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	case k.formMode:
		return []key.Binding{k.NextField, k.Up, k.Submit, k.Back}
	default:
		return []key.Binding{k.Clients, k.Products, k.Orders, k.Refresh, k.Search, k.Help, k.Quit}
	}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	if k.formMode || k.searchingMode {
		return [][]key.Binding{k.ShortHelp(), {k.PrevField}}
	}
	return [][]key.Binding{
		{k.Dashboard, k.Refresh, k.Search},
		{k.Clients, k.NewClient},
		{k.Products, k.NewProduct},
		{k.Orders, k.NewOrder},
		{k.Help, k.Quit},
	}
}
