package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ClientRepo handles clients.
type ClientRepo struct {
	db *sql.DB
}

func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{db: db} }

func (r *ClientRepo) Create(ctx context.Context, c Client) (Client, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO clients(nom, email, ville) VALUES (?, ?, ?)`, c.Name, c.Email, c.City)
	if err != nil {
		return Client{}, err
	}
	c.ID, err = res.LastInsertId()
	return c, err
}

func (r *ClientRepo) List(ctx context.Context) ([]Client, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, nom, email, ville FROM clients ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.City); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClientRepo) Get(ctx context.Context, id int64) (Client, error) {
	var c Client
	err := r.db.QueryRowContext(ctx, `SELECT id, nom, email, ville FROM clients WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.City)
	if errors.Is(err, sql.ErrNoRows) {
		return Client{}, fmt.Errorf("client %d: %w", id, ErrNotFound)
	}
	return c, err
}

func (r *ClientRepo) Update(ctx context.Context, c Client) error {
	res, err := r.db.ExecContext(ctx, `UPDATE clients SET nom = ?, email = ?, ville = ? WHERE id = ?`, c.Name, c.Email, c.City, c.ID)
	if err != nil {
		return err
	}
	return expectOne(res, "client", c.ID)
}

func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		if isForeignKey(err) {
			return fmt.Errorf("client %d: %w", id, ErrInUse)
		}
		return err
	}
	return expectOne(res, "client", id)
}

func expectOne(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}
