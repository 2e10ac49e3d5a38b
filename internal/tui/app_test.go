package tui

import (
	"context"
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/adminpanel/internal/admin"
	"github.com/jask/adminpanel/internal/api"
	"github.com/jask/adminpanel/internal/api/memory"
)

func newTestApp(t *testing.T) (*App, *memory.Gateway) {
	t.Helper()
	gw := memory.New()
	ctrl := admin.New(context.Background(), gw, admin.WithNoticeTTL(time.Millisecond))
	a := New(ctrl)
	a.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return a, gw
}

// drive runs cmd and feeds every controller result back into the app.
// Other messages (timers, blink) are dropped.
func drive(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch m := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range m {
			drive(t, a, c)
		}
	case admin.ResultMsg:
		_, next := a.Update(m)
		drive(t, a, next)
	}
}

func press(t *testing.T, a *App, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd := a.Update(msg)
		drive(t, a, cmd)
	}
}

func TestFetchClientsShowsTable(t *testing.T) {
	a, gw := newTestApp(t)
	gw.Seed([]api.Client{{ID: 1, Name: "Ana", Email: "a@x.com", City: "Lyon"}}, nil, nil)

	press(t, a, "c")
	s := a.ctrl.State()
	require.Equal(t, admin.ViewShowClients, s.View)
	require.False(t, s.Busy)
	out := a.View()
	require.Contains(t, out, "Clients (1)")
	require.Contains(t, out, "a@x.com")

	press(t, a, "d")
	require.Contains(t, a.View(), "Clients")
	require.Equal(t, admin.ViewDashboard, a.ctrl.State().View)
}

func TestEmptyClientNameRejectedBeforeNetwork(t *testing.T) {
	a, gw := newTestApp(t)

	press(t, a, "C")
	require.Equal(t, admin.ViewCreateClient, a.ctrl.State().View)
	press(t, a, "tab", "a@x.com", "tab", "Lyon", "enter")

	require.Empty(t, gw.Calls())
	require.Equal(t, admin.ViewCreateClient, a.ctrl.State().View)
	require.Contains(t, a.View(), "name: required")
	require.False(t, a.ctrl.State().Busy)
}

func TestCreateClientResetsFormAndShowsList(t *testing.T) {
	a, gw := newTestApp(t)

	press(t, a, "C", "Ana", "tab", "a@x.com", "tab", "Lyon", "enter")

	s := a.ctrl.State()
	require.Equal(t, admin.ViewShowClients, s.View)
	require.Len(t, s.Clients, 1)
	require.NotNil(t, s.Notice)
	require.Equal(t, admin.ClientCreatedText, s.Notice.Text)
	require.Contains(t, a.View(), admin.ClientCreatedText)
	require.Equal(t, "", a.clientForm.value(0))
	require.Len(t, gw.Calls(), 2)
}

func TestInitLeavesCollectionsEmpty(t *testing.T) {
	a, gw := newTestApp(t)
	gw.Seed([]api.Client{{ID: 1, Name: "Ana"}}, nil, nil)

	require.NotNil(t, a.Init())
	s := a.ctrl.State()
	require.Equal(t, admin.ViewDashboard, s.View)
	require.False(t, s.Busy)
	require.True(t, s.Empty())
	require.Nil(t, s.Notice)
	require.Empty(t, gw.Calls())
}

func TestCreateClientClearsFormWhenReloadFails(t *testing.T) {
	a, gw := newTestApp(t)
	gw.Fail(http.MethodGet, api.ResourceClients, nil)

	press(t, a, "C", "Ana", "tab", "a@x.com", "tab", "Lyon", "enter")

	s := a.ctrl.State()
	require.Equal(t, admin.ViewCreateClient, s.View)
	require.NotNil(t, s.Notice)
	require.Equal(t, admin.NoticeError, s.Notice.Kind)
	require.Equal(t, "", a.clientForm.value(0))
	require.Equal(t, "", a.clientForm.value(1))

	gw.Recover()
	press(t, a, "enter")

	posts := 0
	for _, c := range gw.Calls() {
		if c.Method == http.MethodPost {
			posts++
		}
	}
	require.Equal(t, 1, posts)
	stored, err := gw.ListClients(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestGlobalKeysIgnoredInsideForms(t *testing.T) {
	a, gw := newTestApp(t)
	press(t, a, "C", "q", "c")
	require.Equal(t, admin.ViewCreateClient, a.ctrl.State().View)
	require.Equal(t, "qc", a.clientForm.value(0))
	require.Empty(t, gw.Calls())

	press(t, a, "esc")
	require.Equal(t, admin.ViewDashboard, a.ctrl.State().View)
}

func TestOrderScenarioRendering(t *testing.T) {
	a, gw := newTestApp(t)
	gw.Seed(
		[]api.Client{{ID: 1, Name: "Ana", Email: "a@x.com", City: "Lyon"}},
		[]api.Product{{ID: 1, Name: "Pen", Price: 1, Stock: 4}, {ID: 2, Name: "Stylo", Price: 2.5, Stock: 0}},
		nil,
	)
	gw.SetNextID(api.ResourceOrders, 5)

	press(t, a, "O")
	require.Equal(t, admin.ViewCreateOrder, a.ctrl.State().View)
	require.Contains(t, a.View(), "Ana · a@x.com")

	press(t, a, "down", "tab")
	require.Contains(t, a.View(), "Stylo - 2.50€")

	// filter products down to Stylo, then set the quantity
	press(t, a, "sty", "tab", "backspace", "3", "enter")

	s := a.ctrl.State()
	require.Equal(t, admin.ViewShowOrders, s.View)
	require.Equal(t, []api.Order{{ID: 5, ClientID: 1, ProductID: 2, Quantity: 3}}, s.Orders)

	out := a.View()
	require.Contains(t, out, "Commande #5")
	require.Contains(t, out, "Ana")
	require.Contains(t, out, "Produit Ref: 2")
	require.Contains(t, out, "x3")
}

func TestOrderWithoutClientRejected(t *testing.T) {
	a, gw := newTestApp(t)
	gw.Seed(nil, []api.Product{{ID: 2, Name: "Stylo", Price: 2.5, Stock: 1}}, nil)

	press(t, a, "O")
	calls := len(gw.Calls())
	press(t, a, "enter")
	require.Len(t, gw.Calls(), calls)
	require.Contains(t, a.View(), "client: required")
}

func TestUnknownClientPlaceholder(t *testing.T) {
	a, gw := newTestApp(t)
	gw.Seed(nil, nil, []api.Order{{ID: 9, ClientID: 42, ProductID: 1, Quantity: 1}})

	press(t, a, "o")
	require.Contains(t, a.View(), admin.UnknownClientText)
}

func TestFailedFetchKeepsViewAndShowsError(t *testing.T) {
	a, gw := newTestApp(t)
	gw.Fail(http.MethodGet, api.ResourceProducts, nil)

	press(t, a, "p")
	s := a.ctrl.State()
	require.Equal(t, admin.ViewDashboard, s.View)
	require.False(t, s.Busy)
	require.NotNil(t, s.Notice)
	require.Equal(t, admin.NoticeError, s.Notice.Kind)
	require.Contains(t, a.View(), admin.GenericErrorText)
}

func TestProductsOutOfStockBadge(t *testing.T) {
	a, gw := newTestApp(t)
	gw.Seed(nil, []api.Product{{ID: 1, Name: "Pen", Price: 1, Stock: 0}, {ID: 2, Name: "Ink", Price: 3, Stock: 7}}, nil)

	press(t, a, "p")
	out := a.View()
	require.Contains(t, out, "Out of stock")
	require.Contains(t, out, "7 in stock")
	require.Contains(t, out, "3.00€")
}

func TestSearchFiltersClients(t *testing.T) {
	a, gw := newTestApp(t)
	gw.Seed([]api.Client{
		{ID: 1, Name: "Ana", Email: "ana@x.com", City: "Lyon"},
		{ID: 2, Name: "Bruno", Email: "bruno@x.com", City: "Nantes"},
	}, nil, nil)

	press(t, a, "c", "/", "b", "r", "u", "enter")
	require.False(t, a.searching)
	rows := a.clients.Rows()
	require.Len(t, rows, 1)
	require.Equal(t, "Bruno", rows[0][1])

	press(t, a, "/", "esc")
	require.Len(t, a.clients.Rows(), 2)
}

func TestDashboardEmptyHint(t *testing.T) {
	a, _ := newTestApp(t)
	require.Contains(t, a.View(), "Nothing here yet")
}

func TestRank(t *testing.T) {
	labels := []string{"Stylo bleu", "Cahier", "Crayon", "Gomme"}
	require.Equal(t, []int{0, 1, 2, 3}, rank("", labels))
	require.Equal(t, []int{1}, rank("cah", labels))
	require.Equal(t, []int{0}, rank("bleu", labels))
	// one typo tolerated
	require.Equal(t, []int{2}, rank("crayn", labels))
	require.Empty(t, rank("zz", labels))
}

func TestDashboardUnitsChart(t *testing.T) {
	a, gw := newTestApp(t)
	gw.Seed(
		[]api.Client{{ID: 1, Name: "Ana"}},
		[]api.Product{{ID: 1, Name: "Pen", Price: 1, Stock: 4}},
		[]api.Order{{ID: 1, ClientID: 1, ProductID: 1, Quantity: 3}},
	)
	require.NotContains(t, a.View(), "Units ordered by product")

	press(t, a, "r")
	s := a.ctrl.State()
	require.Equal(t, admin.ViewDashboard, s.View)
	clients, products, orders := s.Counts()
	require.Equal(t, [3]int{1, 1, 1}, [3]int{clients, products, orders})
	require.Contains(t, a.View(), "Units ordered by product")
}
