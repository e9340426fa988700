package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// MustInsertUser seeds an active staff user and returns its id together with
// the uniquified auth code to create orders with.
func MustInsertUser(t *testing.T, db *pgxpool.Pool, givenName, email, authCode string) (string, string) {
	t.Helper()

	uniq := fmt.Sprintf("%d", time.Now().UnixNano())
	emailUniq := fmt.Sprintf("%s.%s", uniq, email)
	codeUniq := fmt.Sprintf("%s-%s", authCode, uniq)

	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO users (email, given_name, password_hash, auth_code, is_active)
		VALUES ($1, $2, 'x', $3, true)
		RETURNING id::text
	`, emailUniq, givenName, codeUniq).Scan(&id)

	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id, codeUniq
}

func MustInsertCustomer(t *testing.T, db *pgxpool.Pool, name string, email *string) string {
	t.Helper()

	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO customers (name, email)
		VALUES ($1, $2)
		RETURNING id::text
	`, name, email).Scan(&id)

	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}

func MustInsertLocation(t *testing.T, db *pgxpool.Pool, name string) string {
	t.Helper()

	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO locations (name)
		VALUES ($1)
		RETURNING id::text
	`, name).Scan(&id)

	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}

func MustInsertProduct(t *testing.T, db *pgxpool.Pool, sku, name string) string {
	t.Helper()

	uniq := fmt.Sprintf("%s-%d", sku, time.Now().UnixNano())

	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO products (sku, name, is_active)
		VALUES ($1, $2, true)
		RETURNING id::text
	`, uniq, name).Scan(&id)

	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}

func MustInsertInventory(t *testing.T, db *pgxpool.Pool, productID, locationID, balance string) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO product_inventory (product_id, location_id, balance)
		VALUES ($1::uuid, $2::uuid, $3::numeric)
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET balance = EXCLUDED.balance, modified_date = now()
	`, productID, locationID, balance)

	require.NoError(t, err)
}

// InventoryBalance reads the tracked balance for a pair, failing the test when
// the row is missing.
func InventoryBalance(t *testing.T, db *pgxpool.Pool, productID, locationID string) string {
	t.Helper()

	var balance string
	err := db.QueryRow(context.Background(), `
		SELECT balance::text
		FROM product_inventory
		WHERE product_id = $1::uuid AND location_id = $2::uuid
	`, productID, locationID).Scan(&balance)

	require.NoError(t, err)
	return balance
}
