package product

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrProductMissing = errors.New("product not found")
)

type Product struct {
	ID          string  `json:"id"`
	SKU         *string `json:"sku,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"isActive"`
}

// Inventory is one (product, location) balance row. Rows are provisioned
// here; the order engine only ever adjusts balances of rows that exist.
type Inventory struct {
	ProductID    string    `json:"productId"`
	LocationID   string    `json:"locationId"`
	Balance      string    `json:"balance"`
	ModifiedDate time.Time `json:"modifiedDate"`
}

type Store interface {
	Create(ctx context.Context, sku *string, name string, description *string) (*Product, error)
	List(ctx context.Context, limit int, offset int) ([]Product, error)
	Update(ctx context.Context, id string, sku *string, name *string, description *string, isActive *bool) (*Product, error)

	SetInventory(ctx context.Context, productID, locationID, balance string) (*Inventory, error)
	ListInventory(ctx context.Context, locationID string) ([]Inventory, error)
}

type Usecase struct {
	store Store
}

func New(store Store) *Usecase {
	return &Usecase{store: store}
}

type CreateInput struct {
	SKU         *string `json:"sku"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Product, error) {
	if in.Name == "" {
		return nil, ErrInvalidInput
	}
	return u.store.Create(ctx, in.SKU, in.Name, in.Description)
}

func (u *Usecase) List(ctx context.Context, limit, offset int) ([]Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return u.store.List(ctx, limit, offset)
}

type UpdateInput struct {
	SKU         *string `json:"sku"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

func (u *Usecase) Update(ctx context.Context, id string, in UpdateInput) (*Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return u.store.Update(ctx, id, in.SKU, in.Name, in.Description, in.IsActive)
}

type SetInventoryInput struct {
	Balance string `json:"balance"`
}

func (u *Usecase) SetInventory(ctx context.Context, productID, locationID string, in SetInventoryInput) (*Inventory, error) {
	if productID == "" || locationID == "" || in.Balance == "" {
		return nil, ErrInvalidInput
	}
	return u.store.SetInventory(ctx, productID, locationID, in.Balance)
}

func (u *Usecase) ListInventory(ctx context.Context, locationID string) ([]Inventory, error) {
	if locationID == "" {
		return nil, ErrInvalidInput
	}
	return u.store.ListInventory(ctx, locationID)
}
