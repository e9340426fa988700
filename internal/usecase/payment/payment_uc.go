package payment

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrOrderMissing = errors.New("order not found")
)

// Payment is the read-side view of an order payment record. Records are
// appended by the order engine on qualifying status changes; this usecase
// never writes them.
type Payment struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"orderId"`
	CreatedByUserID string    `json:"createdByUserId"`
	CreatedDate     time.Time `json:"createdDate"`
	PaymentDate     time.Time `json:"paymentDate"`
	PaymentAmount   string    `json:"paymentAmount"`
	PaymentTypeID   int       `json:"paymentTypeId"`
}

type OrderPaymentState struct {
	OrderID    string `json:"orderId"`
	PaidAmount string `json:"paidAmount"`
	Total      string `json:"total"`
	Status     string `json:"status"`
}

type Store interface {
	ListByOrder(ctx context.Context, orderID string) ([]Payment, *OrderPaymentState, error)
}

type Usecase struct {
	store Store
}

func New(store Store) *Usecase {
	return &Usecase{store: store}
}

func (u *Usecase) ListByOrder(ctx context.Context, orderID string) ([]Payment, *OrderPaymentState, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, nil, ErrInvalidInput
	}
	return u.store.ListByOrder(ctx, orderID)
}
