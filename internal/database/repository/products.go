package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ProductRepo handles produits.
type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(ctx context.Context, p Product) (Product, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO produits(nom, prix, stock) VALUES (?, ?, ?)`, p.Name, p.Price, p.Stock)
	if err != nil {
		return Product{}, err
	}
	p.ID, err = res.LastInsertId()
	return p, err
}

func (r *ProductRepo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, nom, prix, stock FROM produits ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `SELECT id, nom, prix, stock FROM produits WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Stock)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return p, err
}

func (r *ProductRepo) Update(ctx context.Context, p Product) error {
	res, err := r.db.ExecContext(ctx, `UPDATE produits SET nom = ?, prix = ?, stock = ? WHERE id = ?`, p.Name, p.Price, p.Stock, p.ID)
	if err != nil {
		return err
	}
	return expectOne(res, "product", p.ID)
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM produits WHERE id = ?`, id)
	if err != nil {
		if isForeignKey(err) {
			return fmt.Errorf("product %d: %w", id, ErrInUse)
		}
		return err
	}
	return expectOne(res, "product", id)
}
