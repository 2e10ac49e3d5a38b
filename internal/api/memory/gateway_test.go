package memory

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/adminpanel/internal/api"
)

func TestSeedContinuesIDs(t *testing.T) {
	t.Parallel()
	g := New()
	g.Seed([]api.Client{{ID: 4, Name: "Ana"}}, nil, nil)

	c, err := g.CreateClient(context.Background(), api.ClientDraft{Name: "Bruno"})
	require.NoError(t, err)
	require.EqualValues(t, 5, c.ID)

	g.SetNextID(api.ResourceClients, 40)
	c, err = g.CreateClient(context.Background(), api.ClientDraft{Name: "Chloé"})
	require.NoError(t, err)
	require.EqualValues(t, 40, c.ID)
}

func TestFailAndRecover(t *testing.T) {
	t.Parallel()
	g := New()
	g.Fail(http.MethodGet, api.ResourceProducts, nil)

	_, err := g.ListProducts(context.Background())
	require.ErrorIs(t, err, api.ErrOperationFailed)
	require.ErrorIs(t, err, ErrUnavailable)
	require.Equal(t, api.KindTransport, api.KindOf(err))

	_, err = g.ListClients(context.Background())
	require.NoError(t, err)

	g.Recover()
	products, err := g.ListProducts(context.Background())
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestCreateOrderUnknownReference(t *testing.T) {
	t.Parallel()
	g := New()
	g.Seed([]api.Client{{ID: 1, Name: "Ana"}}, []api.Product{{ID: 2, Name: "Pen"}}, nil)

	_, err := g.CreateOrder(context.Background(), api.OrderDraft{ClientID: 9, ProductID: 2, Quantity: 1})
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)

	o, err := g.CreateOrder(context.Background(), api.OrderDraft{ClientID: 1, ProductID: 2, Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, api.Order{ID: 1, ClientID: 1, ProductID: 2, Quantity: 3}, o)
}

func TestCallsRecordRequestID(t *testing.T) {
	t.Parallel()
	g := New()
	ctx := api.WithRequestID(context.Background(), "op-7")
	_, _ = g.ListOrders(ctx)
	require.Equal(t, []Call{{Method: http.MethodGet, Resource: api.ResourceOrders, RequestID: "op-7"}}, g.Calls())
}
