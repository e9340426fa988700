package customer

import (
	"context"
	"errors"
)

var ErrInvalidInput = errors.New("invalid input")

type Customer struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
}

type Store interface {
	Create(ctx context.Context, name string, email *string) (*Customer, error)
	List(ctx context.Context, limit int, offset int) ([]Customer, error)
}

type Usecase struct {
	store Store
}

func New(store Store) *Usecase {
	return &Usecase{store: store}
}

type CreateInput struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Customer, error) {
	if in.Name == "" {
		return nil, ErrInvalidInput
	}
	return u.store.Create(ctx, in.Name, in.Email)
}

func (u *Usecase) List(ctx context.Context, limit, offset int) ([]Customer, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return u.store.List(ctx, limit, offset)
}
