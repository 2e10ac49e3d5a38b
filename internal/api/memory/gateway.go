// Package memory is an in-process api.Gateway used for offline runs and tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"github.com/jask/adminpanel/internal/api"
)

// ErrUnavailable is what Fail injects when no error is given.
var ErrUnavailable = errors.New("backend unavailable")

// Call records one gateway invocation.
type Call struct {
	Method    string
	Resource  api.Resource
	RequestID string
}

// Gateway stores records in memory and assigns sequential ids per resource.
type Gateway struct {
	mu       sync.Mutex
	clients  []api.Client
	products []api.Product
	orders   []api.Order
	nextID   map[api.Resource]int64
	fail     map[Call]error
	calls    []Call
}

func New() *Gateway {
	return &Gateway{
		nextID: map[api.Resource]int64{
			api.ResourceClients:  1,
			api.ResourceProducts: 1,
			api.ResourceOrders:   1,
		},
		fail: map[Call]error{},
	}
}

// Seed replaces the stored records. Ids continue after the highest seeded id.
func (g *Gateway) Seed(clients []api.Client, products []api.Product, orders []api.Order) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients = slices.Clone(clients)
	g.products = slices.Clone(products)
	g.orders = slices.Clone(orders)
	for _, c := range clients {
		g.bump(api.ResourceClients, c.ID)
	}
	for _, p := range products {
		g.bump(api.ResourceProducts, p.ID)
	}
	for _, o := range orders {
		g.bump(api.ResourceOrders, o.ID)
	}
}

// SetNextID forces the id assigned to the next created record of r.
func (g *Gateway) SetNextID(r api.Resource, id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextID[r] = id
}

// Fail makes every later call of method on r return err as a transport error.
func (g *Gateway) Fail(method string, r api.Resource, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err == nil {
		err = ErrUnavailable
	}
	g.fail[Call{Method: method, Resource: r}] = err
}

// Recover clears every injected failure.
func (g *Gateway) Recover() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fail = map[Call]error{}
}

// Calls returns the invocations seen so far.
func (g *Gateway) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.calls)
}

func (g *Gateway) bump(r api.Resource, id int64) {
	if id >= g.nextID[r] {
		g.nextID[r] = id + 1
	}
}

func (g *Gateway) take(r api.Resource) int64 {
	id := g.nextID[r]
	g.nextID[r] = id + 1
	return id
}

// enter records the call and returns an injected failure, if any. Callers hold mu.
func (g *Gateway) enter(ctx context.Context, method string, r api.Resource) error {
	g.calls = append(g.calls, Call{Method: method, Resource: r, RequestID: api.RequestIDFrom(ctx)})
	if err := ctx.Err(); err != nil {
		return &api.Error{Kind: api.KindTransport, Method: method, Resource: r, Err: err}
	}
	if err, ok := g.fail[Call{Method: method, Resource: r}]; ok {
		return &api.Error{Kind: api.KindTransport, Method: method, Resource: r, Err: err}
	}
	return nil
}

func (g *Gateway) ListClients(ctx context.Context) ([]api.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(ctx, http.MethodGet, api.ResourceClients); err != nil {
		return nil, err
	}
	return append([]api.Client{}, g.clients...), nil
}

func (g *Gateway) CreateClient(ctx context.Context, d api.ClientDraft) (api.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(ctx, http.MethodPost, api.ResourceClients); err != nil {
		return api.Client{}, err
	}
	c := api.Client{ID: g.take(api.ResourceClients), Name: d.Name, Email: d.Email, City: d.City}
	g.clients = append(g.clients, c)
	return c, nil
}

func (g *Gateway) ListProducts(ctx context.Context) ([]api.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(ctx, http.MethodGet, api.ResourceProducts); err != nil {
		return nil, err
	}
	return append([]api.Product{}, g.products...), nil
}

func (g *Gateway) CreateProduct(ctx context.Context, d api.ProductDraft) (api.Product, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(ctx, http.MethodPost, api.ResourceProducts); err != nil {
		return api.Product{}, err
	}
	p := api.Product{ID: g.take(api.ResourceProducts), Name: d.Name, Price: d.Price, Stock: d.Stock}
	g.products = append(g.products, p)
	return p, nil
}

func (g *Gateway) ListOrders(ctx context.Context) ([]api.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(ctx, http.MethodGet, api.ResourceOrders); err != nil {
		return nil, err
	}
	return append([]api.Order{}, g.orders...), nil
}

// CreateOrder rejects unknown client or product ids with a 404, like the backend.
func (g *Gateway) CreateOrder(ctx context.Context, d api.OrderDraft) (api.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(ctx, http.MethodPost, api.ResourceOrders); err != nil {
		return api.Order{}, err
	}
	if !slices.ContainsFunc(g.clients, func(c api.Client) bool { return c.ID == d.ClientID }) {
		return api.Order{}, notFound(api.ResourceClients, d.ClientID)
	}
	if !slices.ContainsFunc(g.products, func(p api.Product) bool { return p.ID == d.ProductID }) {
		return api.Order{}, notFound(api.ResourceProducts, d.ProductID)
	}
	o := api.Order{ID: g.take(api.ResourceOrders), ClientID: d.ClientID, ProductID: d.ProductID, Quantity: d.Quantity}
	g.orders = append(g.orders, o)
	return o, nil
}

func notFound(r api.Resource, id int64) error {
	return &api.Error{
		Kind:     api.KindStatus,
		Method:   http.MethodPost,
		Resource: api.ResourceOrders,
		Status:   http.StatusNotFound,
		Err:      fmt.Errorf("%s %d not found", r, id),
	}
}

var _ api.Gateway = (*Gateway)(nil)
