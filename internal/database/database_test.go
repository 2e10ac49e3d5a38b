package database

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) (context.Context, *sql.DB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, RunMigrations(db))
	return ctx, db
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx, db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	version, dirty, err := Version(db)
	require.NoError(t, err)
	require.False(t, dirty)
	require.EqualValues(t, 1, version)

	for _, table := range []string{"clients", "produits", "commandes"} {
		var n int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
		require.Zero(t, n, table)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	t.Parallel()
	ctx, db := openTestDB(t)
	_, err := db.ExecContext(ctx, `INSERT INTO commandes(id_client, id_produit, quantite) VALUES (99, 99, 1)`)
	require.Error(t, err)
}

func TestLoadFixturesSeedsOnce(t *testing.T) {
	t.Parallel()
	ctx, db := openTestDB(t)
	path := filepath.Join(t.TempDir(), "fixtures.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[clients]]
nom = "Ana"
email = "ana@example.com"
ville = "Lyon"

[[clients]]
nom = "Bruno"
email = "bruno@example.com"
ville = "Nantes"

[[produits]]
nom = "Stylo"
prix = 1.5
stock = 40
`), 0o644))

	res, err := LoadFixtures(ctx, db, path)
	require.NoError(t, err)
	require.Equal(t, SeedResult{Clients: 2, Products: 1}, res)

	again, err := LoadFixtures(ctx, db, path)
	require.NoError(t, err)
	require.True(t, again.Skipped)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clients").Scan(&n))
	require.Equal(t, 2, n)
}

func TestLoadFixturesRejectsBadFile(t *testing.T) {
	t.Parallel()
	ctx, db := openTestDB(t)
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[clients]\nnom = "), 0o644))
	_, err := LoadFixtures(ctx, db, path)
	require.Error(t, err)
}

func TestLoadFixturesRollsBackOnConstraint(t *testing.T) {
	t.Parallel()
	ctx, db := openTestDB(t)
	path := filepath.Join(t.TempDir(), "negative.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[clients]]
nom = "Ana"
email = "ana@example.com"
ville = "Lyon"

[[produits]]
nom = "Broken"
prix = -1
stock = 1
`), 0o644))

	_, err := LoadFixtures(ctx, db, path)
	require.Error(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clients").Scan(&n))
	require.Zero(t, n)
}
