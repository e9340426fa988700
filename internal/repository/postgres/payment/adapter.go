package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	payuc "github.com/tom-gerken/ecommerce-backend/internal/usecase/payment"
)

type PaymentStoreAdapter struct {
	repo *PaymentRepo
}

func NewPaymentStoreAdapter(repo *PaymentRepo) *PaymentStoreAdapter {
	return &PaymentStoreAdapter{repo: repo}
}

func (a *PaymentStoreAdapter) ListByOrder(ctx context.Context, orderID string) ([]payuc.Payment, *payuc.OrderPaymentState, error) {
	state, err := a.repo.GetOrderPaymentState(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, payuc.ErrOrderMissing
		}
		return nil, nil, err
	}

	rows, err := a.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	out := make([]payuc.Payment, 0, len(rows))
	for i := range rows {
		out = append(out, payuc.Payment{
			ID:              rows[i].ID,
			OrderID:         rows[i].OrderID,
			CreatedByUserID: rows[i].CreatedByUserID,
			CreatedDate:     rows[i].CreatedDate,
			PaymentDate:     rows[i].PaymentDate,
			PaymentAmount:   rows[i].PaymentAmount,
			PaymentTypeID:   rows[i].PaymentTypeID,
		})
	}

	return out, &payuc.OrderPaymentState{
		OrderID:    state.OrderID,
		PaidAmount: state.PaidAmount,
		Total:      state.Total,
		Status:     state.Status,
	}, nil
}

// Compile-time check
var _ payuc.Store = (*PaymentStoreAdapter)(nil)
