package admin

import "github.com/jask/adminpanel/internal/api"

// View is the screen currently shown in the main area.
type View int

const (
	ViewDashboard View = iota
	ViewCreateClient
	ViewShowClients
	ViewCreateProduct
	ViewShowProducts
	ViewCreateOrder
	ViewShowOrders
)

var viewNames = [...]string{
	ViewDashboard:     "dashboard",
	ViewCreateClient:  "create_client",
	ViewShowClients:   "show_clients",
	ViewCreateProduct: "create_product",
	ViewShowProducts:  "show_products",
	ViewCreateOrder:   "create_order",
	ViewShowOrders:    "show_orders",
}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return "unknown"
	}
	return viewNames[v]
}

// Resource reports which collection a view belongs to; empty for the dashboard.
func (v View) Resource() api.Resource {
	switch v {
	case ViewCreateClient, ViewShowClients:
		return api.ResourceClients
	case ViewCreateProduct, ViewShowProducts:
		return api.ResourceProducts
	case ViewCreateOrder, ViewShowOrders:
		return api.ResourceOrders
	default:
		return ""
	}
}

// IsForm is true for the three creation views.
func (v View) IsForm() bool {
	return v == ViewCreateClient || v == ViewCreateProduct || v == ViewCreateOrder
}
