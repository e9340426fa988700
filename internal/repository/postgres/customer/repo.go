package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	customeruc "github.com/tom-gerken/ecommerce-backend/internal/usecase/customer"
)

type CustomerRow struct {
	ID        string
	Name      string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CustomerRepo struct {
	db *pgxpool.Pool
}

func NewCustomerRepo(db *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{db: db}
}

func (r *CustomerRepo) Create(ctx context.Context, name string, email *string) (*customeruc.Customer, error) {
	const q = `
INSERT INTO customers (name, email)
VALUES ($1, $2)
RETURNING id::text, name, email;
`
	var out customeruc.Customer
	if err := r.db.QueryRow(ctx, q, name, email).Scan(&out.ID, &out.Name, &out.Email); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CustomerRepo) List(ctx context.Context, limit int, offset int) ([]customeruc.Customer, error) {
	const q = `
SELECT id::text, name, email
FROM customers
ORDER BY created_at DESC
LIMIT $1 OFFSET $2;
`
	rows, err := r.db.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]customeruc.Customer, 0, limit)
	for rows.Next() {
		var c customeruc.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Compile-time check
var _ customeruc.Store = (*CustomerRepo)(nil)
