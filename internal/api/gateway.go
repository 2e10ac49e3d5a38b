package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Gateway is the remote data contract the controller depends on.
type Gateway interface {
	ListClients(ctx context.Context) ([]Client, error)
	CreateClient(ctx context.Context, d ClientDraft) (Client, error)
	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, d ProductDraft) (Product, error)
	ListOrders(ctx context.Context) ([]Order, error)
	CreateOrder(ctx context.Context, d OrderDraft) (Order, error)
}

// RequestIDHeader carries the caller's operation id to the backend.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID attaches an operation id that HTTPGateway forwards as a header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id stored by WithRequestID.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// HTTPGateway talks JSON to the backend. One request per call, no retries.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

// Option configures an HTTPGateway.
type Option func(*HTTPGateway)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *HTTPGateway) {
		if c != nil {
			g.client = c
		}
	}
}

func NewHTTPGateway(baseURL string, opts ...Option) *HTTPGateway {
	g := &HTTPGateway{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BaseURL returns the normalized base address.
func (g *HTTPGateway) BaseURL() string { return g.baseURL }

func (g *HTTPGateway) ListClients(ctx context.Context) ([]Client, error) {
	return list[Client](ctx, g, ResourceClients)
}

func (g *HTTPGateway) CreateClient(ctx context.Context, d ClientDraft) (Client, error) {
	return create[Client](ctx, g, ResourceClients, d)
}

func (g *HTTPGateway) ListProducts(ctx context.Context) ([]Product, error) {
	return list[Product](ctx, g, ResourceProducts)
}

func (g *HTTPGateway) CreateProduct(ctx context.Context, d ProductDraft) (Product, error) {
	return create[Product](ctx, g, ResourceProducts, d)
}

func (g *HTTPGateway) ListOrders(ctx context.Context) ([]Order, error) {
	return list[Order](ctx, g, ResourceOrders)
}

func (g *HTTPGateway) CreateOrder(ctx context.Context, d OrderDraft) (Order, error) {
	return create[Order](ctx, g, ResourceOrders, d)
}

func list[T any](ctx context.Context, g *HTTPGateway, r Resource) ([]T, error) {
	body, err := g.do(ctx, http.MethodGet, r, nil)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &Error{Kind: KindDecode, Method: http.MethodGet, Resource: r, Err: err}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func create[T any](ctx context.Context, g *HTTPGateway, r Resource, draft any) (T, error) {
	var zero T
	payload, err := json.Marshal(draft)
	if err != nil {
		return zero, &Error{Kind: KindEncode, Method: http.MethodPost, Resource: r, Err: err}
	}
	body, err := g.do(ctx, http.MethodPost, r, payload)
	if err != nil {
		return zero, err
	}
	out, err := decodeCreated[T](body, r.envelopeKey())
	if err != nil {
		return zero, &Error{Kind: KindDecode, Method: http.MethodPost, Resource: r, Err: err}
	}
	return out, nil
}

// decodeCreated accepts either the bare record or {"message": ..., key: record}.
func decodeCreated[T any](body []byte, key string) (T, error) {
	var out T
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return out, err
	}
	if inner, ok := fields[key]; ok && key != "" {
		if _, hasID := fields["id"]; !hasID {
			body = inner
		}
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, err
	}
	return out, nil
}

func (g *HTTPGateway) do(ctx context.Context, method string, r Resource, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+r.Path(), reader)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Method: method, Resource: r, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := RequestIDFrom(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Method: method, Resource: r, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Method: method, Resource: r, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Kind: KindStatus, Method: method, Resource: r, Status: resp.StatusCode, Err: errors.New(snippet(body))}
	}
	return body, nil
}

func snippet(body []byte) string {
	const max = 256
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		s = s[:max] + "..."
	}
	if s == "" {
		return "empty body"
	}
	return s
}
