// Package tui renders the admin controller as a bubbletea program.
package tui

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/adminpanel/internal/admin"
	"github.com/jask/adminpanel/internal/api"
)

// App is the root model. It owns widgets only; data lives in the controller.
type App struct {
	ctrl     *admin.Controller
	log      *slog.Logger
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	clients  table.Model
	search   textinput.Model
	backend  string
	currency string

	searching bool
	lastView  admin.View

	clientForm  *form
	productForm *form
	orderForm   *orderForm

	width  int
	height int
}

// Option configures an App.
type Option func(*App)

// WithCurrency sets the symbol appended to prices.
func WithCurrency(symbol string) Option {
	return func(a *App) { a.currency = symbol }
}

// WithBackend sets the label shown in the header, usually the base URL.
func WithBackend(label string) Option {
	return func(a *App) { a.backend = label }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

func New(ctrl *admin.Controller, opts ...Option) *App {
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "filter"
	search.CharLimit = 60

	a := &App{
		ctrl:        ctrl,
		log:         slog.New(slog.DiscardHandler),
		keys:        defaultKeys(),
		help:        help.New(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		clients:     newClientTable(),
		search:      search,
		currency:    "€",
		clientForm:  newClientForm(),
		productForm: newProductForm(),
		orderForm:   newOrderForm(),
		lastView:    ctrl.State().View,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func newClientTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 5},
			{Title: "Name", Width: 20},
			{Title: "Email", Width: 26},
			{Title: "City", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(colorAccent).BorderBottom(true).BorderForeground(colorSurface1)
	s.Selected = s.Selected.Foreground(colorCrust).Background(colorAccent)
	t.SetStyles(s)
	return t
}

// Init starts the spinner only. Collections stay empty until the user asks
// for them.
func (a *App) Init() tea.Cmd {
	return a.spinner.Tick
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		if a.height > 12 {
			a.clients.SetHeight(a.height - 12)
		}
		return a, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case admin.ResultMsg:
		cmd := a.ctrl.Update(m)
		if m.Err == nil || m.Refresh.Created {
			a.afterSuccess(m.Action)
		}
		return a, tea.Batch(cmd, a.sync())
	case tea.KeyMsg:
		return a, a.handleKey(m)
	}
	return a, a.ctrl.Update(msg)
}

func (a *App) afterSuccess(action admin.Action) {
	switch action {
	case admin.ActionCreateClient:
		a.clientForm.reset()
	case admin.ActionCreateProduct:
		a.productForm.reset()
	case admin.ActionCreateOrder, admin.ActionOpenCreateOrder:
		a.orderForm.reset()
	}
}

// sync copies controller state into the widgets that keep their own copy.
func (a *App) sync() tea.Cmd {
	s := a.ctrl.State()
	var cmd tea.Cmd
	if s.View != a.lastView {
		a.lastView = s.View
		a.stopSearch(true)
		cmd = a.focusForm(s.View)
	}
	a.orderForm.clients.setOptions(clientOptions(s.Clients))
	a.orderForm.products.setOptions(a.productOptions(s.Products))
	a.clients.SetRows(a.clientRows(s))
	return cmd
}

func (a *App) focusForm(v admin.View) tea.Cmd {
	switch v {
	case admin.ViewCreateClient:
		return a.clientForm.move(-a.clientForm.focus)
	case admin.ViewCreateProduct:
		return a.productForm.move(-a.productForm.focus)
	case admin.ViewCreateOrder:
		return a.orderForm.setFocus(a.orderForm.focus)
	}
	return nil
}

func (a *App) navigate(v admin.View) tea.Cmd {
	a.ctrl.Navigate(v)
	return a.sync()
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	if key.Matches(m, a.keys.ForceQuit) {
		return tea.Quit
	}
	if a.searching {
		return a.handleSearchKey(m)
	}
	view := a.ctrl.State().View
	if view.IsForm() {
		return a.handleFormKey(view, m)
	}

	switch {
	case key.Matches(m, a.keys.Quit):
		return tea.Quit
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(m, a.keys.Dashboard):
		return a.navigate(admin.ViewDashboard)
	case key.Matches(m, a.keys.Clients):
		return a.ctrl.FetchClients()
	case key.Matches(m, a.keys.NewClient):
		return a.navigate(admin.ViewCreateClient)
	case key.Matches(m, a.keys.Products):
		return a.ctrl.FetchProducts()
	case key.Matches(m, a.keys.NewProduct):
		return a.navigate(admin.ViewCreateProduct)
	case key.Matches(m, a.keys.Orders):
		return a.ctrl.FetchOrders()
	case key.Matches(m, a.keys.NewOrder):
		return a.ctrl.OpenCreateOrder()
	case key.Matches(m, a.keys.Refresh):
		return a.ctrl.RefreshStats()
	case key.Matches(m, a.keys.Search):
		if isList(view) {
			a.searching = true
			return a.search.Focus()
		}
	case view == admin.ViewShowClients:
		var cmd tea.Cmd
		a.clients, cmd = a.clients.Update(m)
		return cmd
	}
	return nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) tea.Cmd {
	switch m.Type {
	case tea.KeyEsc:
		a.stopSearch(true)
	case tea.KeyEnter:
		a.stopSearch(false)
	default:
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(m)
		a.clients.SetRows(a.clientRows(a.ctrl.State()))
		a.clients.GotoTop()
		return cmd
	}
	a.clients.SetRows(a.clientRows(a.ctrl.State()))
	return nil
}

func (a *App) stopSearch(clear bool) {
	a.searching = false
	a.search.Blur()
	if clear {
		a.search.Reset()
	}
}

func (a *App) handleFormKey(view admin.View, m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Back):
		a.clientForm.err, a.productForm.err, a.orderForm.err = "", "", ""
		return a.navigate(admin.ViewDashboard)
	case key.Matches(m, a.keys.Submit):
		return a.submit(view)
	}
	switch view {
	case admin.ViewCreateClient:
		return a.clientForm.handleKey(m, a.keys)
	case admin.ViewCreateProduct:
		return a.productForm.handleKey(m, a.keys)
	default:
		return a.orderForm.handleKey(m, a.keys)
	}
}

// submit validates locally; a rejected form never reaches the controller's
// gateway.
func (a *App) submit(view admin.View) tea.Cmd {
	var (
		cmd tea.Cmd
		err error
		dst *string
	)
	switch view {
	case admin.ViewCreateClient:
		cmd, err = a.ctrl.CreateClient(clientFormValue(a.clientForm))
		dst = &a.clientForm.err
	case admin.ViewCreateProduct:
		cmd, err = a.ctrl.CreateProduct(productFormValue(a.productForm))
		dst = &a.productForm.err
	default:
		cmd, err = a.ctrl.CreateOrder(a.orderForm.value())
		dst = &a.orderForm.err
	}
	if err != nil {
		a.log.Debug("form rejected", "view", view, "err", err)
		*dst = err.Error()
		return nil
	}
	*dst = ""
	return cmd
}

func isList(v admin.View) bool {
	return v == admin.ViewShowClients || v == admin.ViewShowProducts || v == admin.ViewShowOrders
}

func (a *App) query() string { return a.search.Value() }

func (a *App) clientRows(s admin.State) []table.Row {
	labels := make([]string, len(s.Clients))
	for i, c := range s.Clients {
		labels[i] = c.Name + " " + c.Email + " " + c.City
	}
	var rows []table.Row
	for _, i := range rank(a.query(), labels) {
		c := s.Clients[i]
		rows = append(rows, table.Row{strconv.FormatInt(c.ID, 10), c.Name, c.Email, c.City})
	}
	return rows
}

func clientOptions(clients []api.Client) []option {
	out := make([]option, len(clients))
	for i, c := range clients {
		out[i] = option{id: c.ID, label: c.Name + " · " + c.Email}
	}
	return out
}

func (a *App) productOptions(products []api.Product) []option {
	out := make([]option, len(products))
	for i, p := range products {
		out[i] = option{id: p.ID, label: fmt.Sprintf("%s - %s", p.Name, a.price(p.Price))}
	}
	return out
}

func (a *App) price(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + a.currency
}
