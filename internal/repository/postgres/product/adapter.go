package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	productuc "github.com/tom-gerken/ecommerce-backend/internal/usecase/product"
)

type ProductStoreAdapter struct {
	repo *ProductRepo
}

func NewProductStoreAdapter(repo *ProductRepo) *ProductStoreAdapter {
	return &ProductStoreAdapter{repo: repo}
}

func (a *ProductStoreAdapter) Create(ctx context.Context, sku *string, name string, description *string) (*productuc.Product, error) {
	row, err := a.repo.Create(ctx, sku, name, description)
	if err != nil {
		return nil, err
	}
	return mapProductRow(row), nil
}

func (a *ProductStoreAdapter) List(ctx context.Context, limit int, offset int) ([]productuc.Product, error) {
	rows, err := a.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]productuc.Product, 0, len(rows))
	for i := range rows {
		out = append(out, *mapProductRow(&rows[i]))
	}
	return out, nil
}

func (a *ProductStoreAdapter) Update(ctx context.Context, id string, sku *string, name *string, description *string, isActive *bool) (*productuc.Product, error) {
	row, err := a.repo.Update(ctx, id, sku, name, description, isActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, productuc.ErrProductMissing
		}
		return nil, err
	}
	return mapProductRow(row), nil
}

func (a *ProductStoreAdapter) SetInventory(ctx context.Context, productID, locationID, balance string) (*productuc.Inventory, error) {
	row, err := a.repo.SetInventory(ctx, productID, locationID, balance)
	if err != nil {
		return nil, err
	}
	return mapInventoryRow(row), nil
}

func (a *ProductStoreAdapter) ListInventory(ctx context.Context, locationID string) ([]productuc.Inventory, error) {
	rows, err := a.repo.ListInventory(ctx, locationID)
	if err != nil {
		return nil, err
	}

	out := make([]productuc.Inventory, 0, len(rows))
	for i := range rows {
		out = append(out, *mapInventoryRow(&rows[i]))
	}
	return out, nil
}

func mapProductRow(r *ProductRow) *productuc.Product {
	return &productuc.Product{
		ID:          r.ID,
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
	}
}

func mapInventoryRow(r *InventoryRow) *productuc.Inventory {
	return &productuc.Inventory{
		ProductID:    r.ProductID,
		LocationID:   r.LocationID,
		Balance:      r.Balance,
		ModifiedDate: r.ModifiedDate,
	}
}

// Compile-time check
var _ productuc.Store = (*ProductStoreAdapter)(nil)
