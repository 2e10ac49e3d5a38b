package admin

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/jask/adminpanel/internal/api"
)

// Action names a user-triggered operation.
type Action int

const (
	ActionFetchClients Action = iota + 1
	ActionFetchProducts
	ActionFetchOrders
	ActionRefreshStats
	ActionOpenCreateOrder
	ActionCreateClient
	ActionCreateProduct
	ActionCreateOrder
)

func (a Action) String() string {
	switch a {
	case ActionFetchClients:
		return "fetch_clients"
	case ActionFetchProducts:
		return "fetch_products"
	case ActionFetchOrders:
		return "fetch_orders"
	case ActionRefreshStats:
		return "refresh_stats"
	case ActionOpenCreateOrder:
		return "open_create_order"
	case ActionCreateClient:
		return "create_client"
	case ActionCreateProduct:
		return "create_product"
	case ActionCreateOrder:
		return "create_order"
	default:
		return "unknown"
	}
}

const (
	ClientCreatedText  = "Client created."
	ProductCreatedText = "Product added to the catalogue."
	OrderCreatedText   = "Order confirmed."
)

// Loaded is a set of collections carried by a Refresh.
type Loaded uint8

const (
	LoadedClients Loaded = 1 << iota
	LoadedProducts
	LoadedOrders

	LoadedAll = LoadedClients | LoadedProducts | LoadedOrders
)

// Refresh replaces the cached collections flagged in Loaded and, when Switch
// is set, moves to Target.
type Refresh struct {
	Clients  []api.Client
	Products []api.Product
	Orders   []api.Order
	Loaded   Loaded
	Target   View
	Switch   bool
	// Created is set once the create call succeeded, even if the reload
	// after it failed.
	Created bool
}

func (r Refresh) to(v View) Refresh {
	r.Target, r.Switch = v, true
	return r
}

// load lists the requested collections concurrently.
func load(ctx context.Context, gw api.Gateway, which Loaded) (Refresh, error) {
	var r Refresh
	g, ctx := errgroup.WithContext(ctx)
	if which&LoadedClients != 0 {
		g.Go(func() error {
			list, err := gw.ListClients(ctx)
			r.Clients = list
			return err
		})
	}
	if which&LoadedProducts != 0 {
		g.Go(func() error {
			list, err := gw.ListProducts(ctx)
			r.Products = list
			return err
		})
	}
	if which&LoadedOrders != 0 {
		g.Go(func() error {
			list, err := gw.ListOrders(ctx)
			r.Orders = list
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Refresh{}, err
	}
	r.Loaded = which
	return r, nil
}

func loadInto(which Loaded, target View) Operation {
	return func(ctx context.Context, gw api.Gateway) (Refresh, error) {
		r, err := load(ctx, gw, which)
		if err != nil {
			return Refresh{}, err
		}
		return r.to(target), nil
	}
}

// reloaded is loadInto for the step after a successful create. On failure the
// returned Refresh still reports Created so the caller can drop the draft.
func reloaded(which Loaded, target View) Operation {
	return func(ctx context.Context, gw api.Gateway) (Refresh, error) {
		r, err := loadInto(which, target)(ctx, gw)
		r.Created = true
		return r, err
	}
}

// FetchClients loads clients and shows the client list.
func (c *Controller) FetchClients() tea.Cmd {
	return c.Run(ActionFetchClients, loadInto(LoadedClients, ViewShowClients), "")
}

// FetchProducts loads products and shows the catalogue.
func (c *Controller) FetchProducts() tea.Cmd {
	return c.Run(ActionFetchProducts, loadInto(LoadedProducts, ViewShowProducts), "")
}

// FetchOrders also reloads clients and products so order rows can resolve names.
func (c *Controller) FetchOrders() tea.Cmd {
	return c.Run(ActionFetchOrders, loadInto(LoadedAll, ViewShowOrders), "")
}

// RefreshStats reloads every collection and stays on the current view.
func (c *Controller) RefreshStats() tea.Cmd {
	return c.Run(ActionRefreshStats, func(ctx context.Context, gw api.Gateway) (Refresh, error) {
		return load(ctx, gw, LoadedAll)
	}, "")
}

// OpenCreateOrder loads the selection lists before showing the order form.
func (c *Controller) OpenCreateOrder() tea.Cmd {
	return c.Run(ActionOpenCreateOrder, loadInto(LoadedClients|LoadedProducts, ViewCreateOrder), "")
}

// CreateClient validates the form, then creates and reloads. A validation
// error is returned without touching the gateway or the busy count. A failed
// reload still reports Created on the ResultMsg.
func (c *Controller) CreateClient(f ClientForm) (tea.Cmd, error) {
	draft, err := f.Draft()
	if err != nil {
		return nil, err
	}
	return c.Run(ActionCreateClient, func(ctx context.Context, gw api.Gateway) (Refresh, error) {
		if _, err := gw.CreateClient(ctx, draft); err != nil {
			return Refresh{}, err
		}
		return reloaded(LoadedClients, ViewShowClients)(ctx, gw)
	}, ClientCreatedText), nil
}

func (c *Controller) CreateProduct(f ProductForm) (tea.Cmd, error) {
	draft, err := f.Draft()
	if err != nil {
		return nil, err
	}
	return c.Run(ActionCreateProduct, func(ctx context.Context, gw api.Gateway) (Refresh, error) {
		if _, err := gw.CreateProduct(ctx, draft); err != nil {
			return Refresh{}, err
		}
		return reloaded(LoadedProducts, ViewShowProducts)(ctx, gw)
	}, ProductCreatedText), nil
}

func (c *Controller) CreateOrder(f OrderForm) (tea.Cmd, error) {
	draft, err := f.Draft()
	if err != nil {
		return nil, err
	}
	return c.Run(ActionCreateOrder, func(ctx context.Context, gw api.Gateway) (Refresh, error) {
		if _, err := gw.CreateOrder(ctx, draft); err != nil {
			return Refresh{}, err
		}
		return reloaded(LoadedAll, ViewShowOrders)(ctx, gw)
	}, OrderCreatedText), nil
}
