package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Fixtures is the TOML layout accepted by LoadFixtures:
//
//	[[clients]]
//	nom = "Ana"
//	email = "ana@example.com"
//	ville = "Lyon"
//
//	[[produits]]
//	nom = "Stylo"
//	prix = 1.5
//	stock = 40
type Fixtures struct {
	Clients []struct {
		Name  string `toml:"nom"`
		Email string `toml:"email"`
		City  string `toml:"ville"`
	} `toml:"clients"`
	Products []struct {
		Name  string  `toml:"nom"`
		Price float64 `toml:"prix"`
		Stock int     `toml:"stock"`
	} `toml:"produits"`
}

// SeedResult counts inserted rows.
type SeedResult struct {
	Clients  int
	Products int
	Skipped  bool
}

// LoadFixtures inserts the clients and products described in the TOML file at
// path. It only seeds an empty database, so it is safe to run on every startup.
func LoadFixtures(ctx context.Context, db *sql.DB, path string) (SeedResult, error) {
	var fx Fixtures
	if _, err := toml.DecodeFile(path, &fx); err != nil {
		return SeedResult{}, fmt.Errorf("decode fixtures %s: %w", path, err)
	}

	var existing int
	if err := db.QueryRowContext(ctx, `SELECT (SELECT COUNT(*) FROM clients) + (SELECT COUNT(*) FROM produits)`).Scan(&existing); err != nil {
		return SeedResult{}, err
	}
	if existing > 0 {
		return SeedResult{Skipped: true}, nil
	}

	var res SeedResult
	err := WithTx(db, func(tx *sql.Tx) error {
		for _, c := range fx.Clients {
			if _, err := tx.ExecContext(ctx, `INSERT INTO clients(nom, email, ville) VALUES (?, ?, ?)`, c.Name, c.Email, c.City); err != nil {
				return fmt.Errorf("seed client %q: %w", c.Name, err)
			}
			res.Clients++
		}
		for _, p := range fx.Products {
			if _, err := tx.ExecContext(ctx, `INSERT INTO produits(nom, prix, stock) VALUES (?, ?, ?)`, p.Name, p.Price, p.Stock); err != nil {
				return fmt.Errorf("seed product %q: %w", p.Name, err)
			}
			res.Products++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return res, nil
}
