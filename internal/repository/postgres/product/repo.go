package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRow struct {
	ID          string
	SKU         *string
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type InventoryRow struct {
	ProductID    string
	LocationID   string
	Balance      string
	ModifiedDate time.Time
}

type ProductRepo struct {
	db *pgxpool.Pool
}

func NewProductRepo(db *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) Create(ctx context.Context, sku *string, name string, description *string) (*ProductRow, error) {
	const q = `
INSERT INTO products (sku, name, description)
VALUES ($1, $2, $3)
RETURNING id::text, sku, name, description, is_active, created_at, updated_at;
`
	row := r.db.QueryRow(ctx, q, sku, name, description)

	var out ProductRow
	if err := row.Scan(&out.ID, &out.SKU, &out.Name, &out.Description, &out.IsActive, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ProductRepo) List(ctx context.Context, limit int, offset int) ([]ProductRow, error) {
	const q = `
SELECT id::text, sku, name, description, is_active, created_at, updated_at
FROM products
ORDER BY created_at DESC
LIMIT $1 OFFSET $2;
`
	rows, err := r.db.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProductRow, 0, limit)
	for rows.Next() {
		var p ProductRow
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Update(ctx context.Context, id string, sku *string, name *string, description *string, isActive *bool) (*ProductRow, error) {
	const q = `
UPDATE products
SET
  sku = COALESCE($2, sku),
  name = COALESCE($3, name),
  description = COALESCE($4, description),
  is_active = COALESCE($5, is_active),
  updated_at = now()
WHERE id = $1::uuid
RETURNING id::text, sku, name, description, is_active, created_at, updated_at;
`
	row := r.db.QueryRow(ctx, q, id, sku, name, description, isActive)

	var out ProductRow
	if err := row.Scan(&out.ID, &out.SKU, &out.Name, &out.Description, &out.IsActive, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetInventory provisions (or resets) the balance row for a (product,
// location) pair. This is the only place rows are created; the order engine
// adjusts balances but never inserts.
func (r *ProductRepo) SetInventory(ctx context.Context, productID, locationID, balance string) (*InventoryRow, error) {
	const q = `
INSERT INTO product_inventory (product_id, location_id, balance, modified_date)
VALUES ($1::uuid, $2::uuid, $3::numeric, now())
ON CONFLICT (product_id, location_id)
DO UPDATE SET balance = EXCLUDED.balance, modified_date = now()
RETURNING product_id::text, location_id::text, balance::text, modified_date;
`
	row := r.db.QueryRow(ctx, q, productID, locationID, balance)

	var out InventoryRow
	if err := row.Scan(&out.ProductID, &out.LocationID, &out.Balance, &out.ModifiedDate); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ProductRepo) ListInventory(ctx context.Context, locationID string) ([]InventoryRow, error) {
	const q = `
SELECT product_id::text, location_id::text, balance::text, modified_date
FROM product_inventory
WHERE location_id = $1::uuid
ORDER BY modified_date DESC;
`
	rows, err := r.db.Query(ctx, q, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]InventoryRow, 0, 32)
	for rows.Next() {
		var i InventoryRow
		if err := rows.Scan(&i.ProductID, &i.LocationID, &i.Balance, &i.ModifiedDate); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}
