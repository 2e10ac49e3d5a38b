package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// OrderRepo handles commandes.
type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create checks that the client and product exist, then inserts the order.
// A missing reference is reported as *RefError.
func (r *OrderRepo) Create(ctx context.Context, o Order) (Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, ref := range []struct {
		table string
		id    int64
	}{{"clients", o.ClientID}, {"produits", o.ProductID}} {
		var one int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM `+ref.table+` WHERE id = ?`, ref.id).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, &RefError{Table: ref.table, ID: ref.id}
		}
		if err != nil {
			return Order{}, err
		}
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO commandes(id_client, id_produit, quantite) VALUES (?, ?, ?)`, o.ClientID, o.ProductID, o.Quantity)
	if err != nil {
		return Order{}, err
	}
	if o.ID, err = res.LastInsertId(); err != nil {
		return Order{}, err
	}
	return o, tx.Commit()
}

func (r *OrderRepo) List(ctx context.Context) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, id_client, id_produit, quantite FROM commandes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.ClientID, &o.ProductID, &o.Quantity); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepo) Get(ctx context.Context, id int64) (Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `SELECT id, id_client, id_produit, quantite FROM commandes WHERE id = ?`, id).
		Scan(&o.ID, &o.ClientID, &o.ProductID, &o.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return o, err
}
