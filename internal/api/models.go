package api

// Resource names a collection exposed by the backend.
type Resource string

const (
	ResourceClients  Resource = "clients"
	ResourceProducts Resource = "produits"
	ResourceOrders   Resource = "commandes"
)

// Path returns the collection path relative to the base address.
func (r Resource) Path() string { return "/" + string(r) }

// envelopeKey is the key the original backend wraps created records in.
func (r Resource) envelopeKey() string {
	switch r {
	case ResourceClients:
		return "client"
	case ResourceProducts:
		return "produit"
	case ResourceOrders:
		return "commande"
	default:
		return ""
	}
}

// Client represents a customer record.
type Client struct {
	ID    int64  `json:"id"`
	Name  string `json:"nom"`
	Email string `json:"email"`
	City  string `json:"ville"`
}

// Product represents a catalogue entry.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"nom"`
	Price float64 `json:"prix"`
	Stock int     `json:"stock"`
}

// Order links a client to a product with a quantity.
type Order struct {
	ID        int64 `json:"id"`
	ClientID  int64 `json:"id_client"`
	ProductID int64 `json:"id_produit"`
	Quantity  int   `json:"quantite"`
}

// ClientDraft is the body of POST /clients.
type ClientDraft struct {
	Name  string `json:"nom"`
	Email string `json:"email"`
	City  string `json:"ville"`
}

// ProductDraft is the body of POST /produits.
type ProductDraft struct {
	Name  string  `json:"nom"`
	Price float64 `json:"prix"`
	Stock int     `json:"stock"`
}

// OrderDraft is the body of POST /commandes.
type OrderDraft struct {
	ClientID  int64 `json:"id_client"`
	ProductID int64 `json:"id_produit"`
	Quantity  int   `json:"quantite"`
}
