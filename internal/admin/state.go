package admin

import "github.com/jask/adminpanel/internal/api"

// UnknownClientText is shown for orders whose client is not in the cache.
const UnknownClientText = "Unknown client"

// NoticeKind selects the toast colour.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

func (k NoticeKind) String() string {
	if k == NoticeError {
		return "error"
	}
	return "success"
}

// Notice is the single transient toast.
type Notice struct {
	Kind NoticeKind
	Text string
	seq  uint64
}

// State is a read-only snapshot handed to the presentation layer.
type State struct {
	View     View
	Clients  []api.Client
	Products []api.Product
	Orders   []api.Order
	// Busy is true while at least one operation is in flight.
	Busy    bool
	Pending int
	Notice  *Notice
}

// Counts returns the dashboard figures.
func (s State) Counts() (clients, products, orders int) {
	return len(s.Clients), len(s.Products), len(s.Orders)
}

// ClientName resolves a client id against the cached clients.
func (s State) ClientName(id int64) string {
	for _, c := range s.Clients {
		if c.ID == id {
			return c.Name
		}
	}
	return UnknownClientText
}

// Product looks up a cached product.
func (s State) Product(id int64) (api.Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return api.Product{}, false
}

// Empty is true when neither clients nor products are cached.
func (s State) Empty() bool {
	return len(s.Clients) == 0 && len(s.Products) == 0
}
