package repository

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInUse is returned when deleting a row that orders still reference.
	ErrInUse = errors.New("referenced by orders")
)

// RefError reports an order pointing at a missing client or product.
type RefError struct {
	Table string
	ID    int64
}

func (e *RefError) Error() string { return fmt.Sprintf("%s %d not found", e.Table, e.ID) }

func (e *RefError) Unwrap() error { return ErrNotFound }

// Client represents a clients row.
type Client struct {
	ID    int64
	Name  string
	Email string
	City  string
}

// Product represents a produits row.
type Product struct {
	ID    int64
	Name  string
	Price float64
	Stock int
}

// Order represents a commandes row.
type Order struct {
	ID        int64
	ClientID  int64
	ProductID int64
	Quantity  int
}

func isForeignKey(err error) bool {
	var sqErr sqlite3.Error
	if errors.As(err, &sqErr) {
		return sqErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
