package admin

import (
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"

	"github.com/jask/adminpanel/internal/api"
)

// ValidationError reports a form field that blocks submission.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Reason }

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "required"}
	}
	return nil
}

// ClientForm holds the raw text of the new-client form.
type ClientForm struct {
	Name  string
	Email string
	City  string
}

// Draft validates the form and builds the POST body.
func (f ClientForm) Draft() (api.ClientDraft, error) {
	for _, chk := range []struct{ field, value string }{
		{"name", f.Name},
		{"email", f.Email},
		{"city", f.City},
	} {
		if err := required(chk.field, chk.value); err != nil {
			return api.ClientDraft{}, err
		}
	}
	email := strings.TrimSpace(f.Email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return api.ClientDraft{}, &ValidationError{Field: "email", Reason: "not a valid address"}
	}
	return api.ClientDraft{
		Name:  strings.TrimSpace(f.Name),
		Email: email,
		City:  strings.TrimSpace(f.City),
	}, nil
}

// ProductForm holds the raw text of the new-product form.
type ProductForm struct {
	Name  string
	Price string
	Stock string
}

func (f ProductForm) Draft() (api.ProductDraft, error) {
	if err := required("name", f.Name); err != nil {
		return api.ProductDraft{}, err
	}
	if err := required("price", f.Price); err != nil {
		return api.ProductDraft{}, err
	}
	if err := required("stock", f.Stock); err != nil {
		return api.ProductDraft{}, err
	}
	price, err := parsePrice(f.Price)
	if err != nil {
		return api.ProductDraft{}, &ValidationError{Field: "price", Reason: err.Error()}
	}
	stock, err := parseCount(f.Stock, 0)
	if err != nil {
		return api.ProductDraft{}, &ValidationError{Field: "stock", Reason: err.Error()}
	}
	return api.ProductDraft{Name: strings.TrimSpace(f.Name), Price: price, Stock: stock}, nil
}

// OrderForm holds the order form. Zero ids mean nothing is selected.
type OrderForm struct {
	ClientID  int64
	ProductID int64
	Quantity  string
}

// NewOrderForm returns the form with the default quantity of 1.
func NewOrderForm() OrderForm { return OrderForm{Quantity: "1"} }

func (f OrderForm) Draft() (api.OrderDraft, error) {
	if f.ClientID <= 0 {
		return api.OrderDraft{}, &ValidationError{Field: "client", Reason: "required"}
	}
	if f.ProductID <= 0 {
		return api.OrderDraft{}, &ValidationError{Field: "product", Reason: "required"}
	}
	if err := required("quantity", f.Quantity); err != nil {
		return api.OrderDraft{}, err
	}
	qty, err := parseCount(f.Quantity, 1)
	if err != nil {
		return api.OrderDraft{}, &ValidationError{Field: "quantity", Reason: err.Error()}
	}
	return api.OrderDraft{ClientID: f.ClientID, ProductID: f.ProductID, Quantity: qty}, nil
}

// parsePrice accepts a dot or comma decimal separator.
func parsePrice(raw string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a number")
	}
	if v < 0 {
		return 0, fmt.Errorf("must be zero or more")
	}
	return v, nil
}

func parseCount(raw string, min int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("not a whole number")
	}
	if v < min {
		return 0, fmt.Errorf("must be at least %d", min)
	}
	return v, nil
}
