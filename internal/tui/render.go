package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/adminpanel/internal/admin"
)

func (a *App) View() string {
	s := a.ctrl.State()

	keys := a.keys
	keys.formMode = s.View.IsForm()
	keys.searchingMode = a.searching

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		a.renderSidebar(s),
		mainStyle.Render(a.renderMain(s)),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(s),
		body,
		a.renderToast(s),
		a.help.View(keys),
	)
}

func (a *App) mainWidth() int {
	if a.width == 0 {
		return 80
	}
	return max(20, a.width-sidebarWidth-6)
}

func (a *App) renderHeader(s admin.State) string {
	left := titleStyle.Render("Admin panel")
	if a.backend != "" {
		left += mutedStyle.Render("  " + a.backend)
	}
	if s.Pending > 1 {
		left += mutedStyle.Render(fmt.Sprintf("  %d requests pending", s.Pending))
	}
	return barStyle.Render(left)
}

type menuEntry struct {
	view  admin.View
	label string
	hint  string
}

var menu = []struct {
	header  string
	entries []menuEntry
}{
	{"", []menuEntry{{admin.ViewDashboard, "Dashboard", "d"}}},
	{"CLIENTS", []menuEntry{
		{admin.ViewShowClients, "List", "c"},
		{admin.ViewCreateClient, "New", "C"},
	}},
	{"PRODUCTS", []menuEntry{
		{admin.ViewShowProducts, "Catalogue", "p"},
		{admin.ViewCreateProduct, "New", "P"},
	}},
	{"ORDERS", []menuEntry{
		{admin.ViewShowOrders, "History", "o"},
		{admin.ViewCreateOrder, "New", "O"},
	}},
}

func (a *App) renderSidebar(s admin.State) string {
	var lines []string
	for _, section := range menu {
		if section.header != "" {
			header := section.header
			if section.entries[0].view.Resource() == s.View.Resource() {
				header = titleStyle.Render(header)
			} else {
				header = menuHeaderStyle.Render(header)
			}
			lines = append(lines, header)
		}
		for _, e := range section.entries {
			text := fmt.Sprintf("%-10s %s", e.label, e.hint)
			if e.view == s.View {
				lines = append(lines, menuActiveStyle.Render(text))
				continue
			}
			lines = append(lines, menuItemStyle.Render(text))
		}
	}
	return sidebarStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderMain(s admin.State) string {
	if s.Busy {
		return a.spinner.View() + " Loading…"
	}
	switch s.View {
	case admin.ViewShowClients:
		return a.renderClients(s)
	case admin.ViewShowProducts:
		return a.renderProducts(s)
	case admin.ViewShowOrders:
		return a.renderOrders(s)
	case admin.ViewCreateClient:
		return a.clientForm.view()
	case admin.ViewCreateProduct:
		return a.productForm.view()
	case admin.ViewCreateOrder:
		return a.orderForm.view()
	default:
		return a.renderDashboard(s)
	}
}

func (a *App) renderDashboard(s admin.State) string {
	clients, products, orders := s.Counts()
	stat := func(label string, n int) string {
		return statCardStyle.Render(labelStyle.Render(label) + "\n" + statValueStyle.Render(strconv.Itoa(n)))
	}
	out := titleStyle.Render("Dashboard") + "\n\n" +
		lipgloss.JoinHorizontal(lipgloss.Top,
			stat("Clients", clients),
			stat("Products", products),
			stat("Orders", orders),
		) + "\n"
	if s.Empty() {
		out += "\n" + mutedStyle.Render("Nothing here yet. Press C to add a client or P to add a product.")
	}
	if chart := a.renderUnitsChart(s); chart != "" {
		out += "\n" + labelStyle.Render("Units ordered by product") + "\n" + chart + "\n"
	}
	return out + "\n" + mutedStyle.Render("Press r to refresh the figures.")
}

const chartBars = 8

// renderUnitsChart sums order quantities per product, largest first.
func (a *App) renderUnitsChart(s admin.State) string {
	if len(s.Orders) == 0 {
		return ""
	}
	units := map[int64]int{}
	var ids []int64
	for _, o := range s.Orders {
		if _, seen := units[o.ProductID]; !seen {
			ids = append(ids, o.ProductID)
		}
		units[o.ProductID] += o.Quantity
	}
	slices.SortStableFunc(ids, func(x, y int64) int { return cmp.Compare(units[y], units[x]) })
	if len(ids) > chartBars {
		ids = ids[:chartBars]
	}

	bar := lipgloss.NewStyle().Foreground(colorTeal)
	data := make([]barchart.BarData, 0, len(ids))
	for _, id := range ids {
		label := fmt.Sprintf("#%d", id)
		if p, ok := s.Product(id); ok {
			label = ansi.Truncate(p.Name, 8, "")
		}
		data = append(data, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: label, Value: float64(units[id]), Style: bar}},
		})
	}
	chart := barchart.New(min(a.mainWidth(), 10*len(data)), 8)
	chart.PushAll(data)
	chart.Draw()
	return chart.View()
}

func (a *App) renderSearch(total, shown int) string {
	if a.query() == "" && !a.searching {
		return ""
	}
	line := a.search.View()
	if !a.searching {
		line = searchStyle.Render("/" + a.query())
	}
	return line + mutedStyle.Render(fmt.Sprintf("  %d of %d", shown, total)) + "\n\n"
}

func (a *App) renderClients(s admin.State) string {
	out := titleStyle.Render(fmt.Sprintf("Clients (%d)", len(s.Clients))) + "\n\n"
	if len(s.Clients) == 0 {
		return out + mutedStyle.Render("No clients yet. Press C to add one.")
	}
	rows := a.clients.Rows()
	out += a.renderSearch(len(s.Clients), len(rows))
	if len(rows) == 0 {
		return out + mutedStyle.Render(fmt.Sprintf("No client matches %q.", a.query()))
	}
	return out + a.clients.View()
}

func (a *App) renderProducts(s admin.State) string {
	out := titleStyle.Render(fmt.Sprintf("Catalogue (%d)", len(s.Products))) + "\n\n"
	if len(s.Products) == 0 {
		return out + mutedStyle.Render("The catalogue is empty. Press P to add a product.")
	}
	labels := make([]string, len(s.Products))
	for i, p := range s.Products {
		labels[i] = p.Name
	}
	idx := rank(a.query(), labels)
	out += a.renderSearch(len(s.Products), len(idx))
	if len(idx) == 0 {
		return out + mutedStyle.Render(fmt.Sprintf("No product matches %q.", a.query()))
	}

	perRow := max(1, a.mainWidth()/(cardStyle.GetWidth()+cardStyle.GetHorizontalFrameSize()))
	var rows, cards []string
	for _, i := range idx {
		p := s.Products[i]
		badge := inStockStyle.Render(fmt.Sprintf("%d in stock", p.Stock))
		if p.Stock == 0 {
			badge = noStockStyle.Render("Out of stock")
		}
		name := ansi.Truncate(p.Name, cardStyle.GetWidth()-2, "…")
		cards = append(cards, cardStyle.Render(
			lipgloss.NewStyle().Bold(true).Render(name)+"\n"+
				priceStyle.Render(a.price(p.Price))+"\n"+
				badge,
		))
		if len(cards) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
			cards = nil
		}
	}
	if len(cards) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return out + strings.Join(rows, "\n")
}

// orderLine renders one history row; the client name comes from the cache.
func (a *App) orderLine(s admin.State, i int) string {
	o := s.Orders[i]
	line := orderRefStyle.Render(fmt.Sprintf("Commande #%d", o.ID)) +
		" · " + s.ClientName(o.ClientID) +
		" · " + fmt.Sprintf("Produit Ref: %d", o.ProductID)
	if p, ok := s.Product(o.ProductID); ok {
		line += mutedStyle.Render(" (" + p.Name + ")")
	}
	line += " · " + fmt.Sprintf("x%d", o.Quantity)
	return ansi.Truncate(line, a.mainWidth(), "…")
}

func (a *App) renderOrders(s admin.State) string {
	out := titleStyle.Render(fmt.Sprintf("Orders (%d)", len(s.Orders))) + "\n\n"
	if len(s.Orders) == 0 {
		return out + mutedStyle.Render("No orders yet. Press O to record one.")
	}
	labels := make([]string, len(s.Orders))
	for i, o := range s.Orders {
		labels[i] = fmt.Sprintf("Commande #%d %s", o.ID, s.ClientName(o.ClientID))
		if p, ok := s.Product(o.ProductID); ok {
			labels[i] += " " + p.Name
		}
	}
	idx := rank(a.query(), labels)
	out += a.renderSearch(len(s.Orders), len(idx))
	if len(idx) == 0 {
		return out + mutedStyle.Render(fmt.Sprintf("No order matches %q.", a.query()))
	}
	lines := make([]string, 0, len(idx))
	for _, i := range idx {
		lines = append(lines, a.orderLine(s, i))
	}
	return out + strings.Join(lines, "\n")
}

func (a *App) renderToast(s admin.State) string {
	if s.Notice == nil {
		return ""
	}
	text := ansi.Truncate(s.Notice.Text, max(20, a.mainWidth()), "…")
	if s.Notice.Kind == admin.NoticeError {
		return toastErrorStyle.Render("✗ " + text)
	}
	return toastSuccessStyle.Render("✓ " + text)
}
