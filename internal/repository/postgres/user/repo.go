package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRow struct {
	ID           string
	Email        string
	GivenName    string
	PasswordHash string
	IsActive     bool
}

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*UserRow, error) {
	const q = `
SELECT id::text, email, given_name, password_hash, is_active
FROM users
WHERE email = $1
LIMIT 1;
`
	row := r.db.QueryRow(ctx, q, email)

	var out UserRow
	if err := row.Scan(&out.ID, &out.Email, &out.GivenName, &out.PasswordHash, &out.IsActive); err != nil {
		return nil, err
	}
	return &out, nil
}
