package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	orderuc "github.com/tom-gerken/ecommerce-backend/internal/usecase/order"
)

type OrderStoreAdapter struct {
	repo *OrderRepo
	db   *pgxpool.Pool
}

func NewOrderStoreAdapter(repo *OrderRepo, db *pgxpool.Pool) *OrderStoreAdapter {
	return &OrderStoreAdapter{repo: repo, db: db}
}

func (a *OrderStoreAdapter) GetByID(ctx context.Context, id string) (*orderuc.Order, error) {
	header, err := getOrderHeader(ctx, a.db, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, orderuc.ErrNotFound
		}
		return nil, err
	}
	return a.loadAggregate(ctx, a.db, header)
}

func (a *OrderStoreAdapter) List(ctx context.Context, in orderuc.ListInput) ([]orderuc.Order, error) {
	rows, err := listOrders(ctx, a.db, in.Limit, in.Offset, in.LocationID, in.CustomerID)
	if err != nil {
		return nil, err
	}

	out := make([]orderuc.Order, 0, len(rows))
	for i := range rows {
		out = append(out, *mapOrderRow(&rows[i]))
	}
	return out, nil
}

func (a *OrderStoreAdapter) GetStatus(ctx context.Context, id string) (string, error) {
	status, err := getOrderStatus(ctx, a.db, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", orderuc.ErrNotFound
	}
	return status, err
}

func (a *OrderStoreAdapter) FindActorByAuthCode(ctx context.Context, authCode string) (string, error) {
	if authCode == "" {
		return "", orderuc.ErrActorNotResolved
	}
	id, err := findUserByAuthCode(ctx, a.db, authCode)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", orderuc.ErrActorNotResolved
	}
	return id, err
}

func (a *OrderStoreAdapter) Create(ctx context.Context, in orderuc.CreateInput, actorUserID string, d orderuc.Decision) (*orderuc.Order, error) {
	tx, err := a.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	header, err := insertOrder(ctx, tx,
		in.LocationID, in.CustomerID, in.Status, actorUserID,
		in.Total, in.SubTotal, in.TotalDiscount,
		in.Notes, in.PoNumber, in.OriginalOrderID, in.Email,
	)
	if err != nil {
		return nil, err
	}

	details := make([]orderuc.Detail, 0, len(in.Details))
	for _, it := range in.Details {
		row, err := insertOrderDetail(ctx, tx, header.ID, it.ProductID, it.Amount, it.UnitPrice, it.LineTotal)
		if err != nil {
			return nil, err
		}
		details = append(details, mapDetailRow(row))
	}

	payments, err := applyDecision(ctx, tx, header, details, d, in.PaymentTypeID, actorUserID, nil)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	out := mapOrderRow(header)
	out.Details = details
	out.Payments = payments
	return out, nil
}

func (a *OrderStoreAdapter) CommitStatusChange(ctx context.Context, in orderuc.StatusCommit) (*orderuc.Order, error) {
	tx, err := a.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	header, err := updateOrderStatusGuarded(ctx, tx, in.OrderID, in.FromVersion, in.NewStatus)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		// Guard missed: distinguish a stale version from a vanished order.
		exists, eerr := orderExists(ctx, tx, in.OrderID)
		if eerr != nil {
			return nil, eerr
		}
		if exists {
			return nil, orderuc.ErrConflict
		}
		return nil, orderuc.ErrNotFound
	}

	detailRows, err := listOrderDetails(ctx, tx, in.OrderID)
	if err != nil {
		return nil, err
	}
	details := make([]orderuc.Detail, 0, len(detailRows))
	for i := range detailRows {
		details = append(details, mapDetailRow(&detailRows[i]))
	}

	existing, err := listOrderPayments(ctx, tx, in.OrderID)
	if err != nil {
		return nil, err
	}

	payments, err := applyDecision(ctx, tx, header, details, in.Decision, in.PaymentTypeID, in.ActorUserID, existing)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	out := mapOrderRow(header)
	out.Details = details
	out.Payments = payments
	return out, nil
}

func (a *OrderStoreAdapter) UpdateInfo(ctx context.Context, id string, in orderuc.UpdateInfoInput) (*orderuc.Order, error) {
	header, err := updateOrderInfo(ctx, a.db, id, in.Notes, in.PoNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, orderuc.ErrNotFound
		}
		return nil, err
	}
	return a.loadAggregate(ctx, a.db, header)
}

// applyDecision executes the side effects of a state machine decision inside
// the caller's transaction: a payment record for the order's full total when
// required, and one relative balance delta per order line.
func applyDecision(
	ctx context.Context,
	tx pgx.Tx,
	header *OrderRow,
	details []orderuc.Detail,
	d orderuc.Decision,
	paymentTypeID int,
	actorUserID string,
	existing []OrderPaymentRow,
) ([]orderuc.OrderPayment, error) {
	payments := make([]orderuc.OrderPayment, 0, len(existing)+1)
	for i := range existing {
		payments = append(payments, mapPaymentRow(&existing[i]))
	}

	if d.RecordPayment {
		row, err := insertOrderPayment(ctx, tx, header.ID, actorUserID, header.Total, paymentTypeID)
		if err != nil {
			return nil, err
		}
		payments = append(payments, mapPaymentRow(row))
	}

	if d.Inventory != orderuc.EffectNone {
		sign := -1
		if d.Inventory == orderuc.EffectIncrement {
			sign = 1
		}
		for _, line := range details {
			if err := applyInventoryDelta(ctx, tx, line.ProductID, header.LocationID, line.Amount, sign); err != nil {
				return nil, err
			}
		}
	}

	return payments, nil
}

func (a *OrderStoreAdapter) loadAggregate(ctx context.Context, q queryer, header *OrderRow) (*orderuc.Order, error) {
	detailRows, err := listOrderDetails(ctx, q, header.ID)
	if err != nil {
		return nil, err
	}
	paymentRows, err := listOrderPayments(ctx, q, header.ID)
	if err != nil {
		return nil, err
	}

	out := mapOrderRow(header)
	out.Details = make([]orderuc.Detail, 0, len(detailRows))
	for i := range detailRows {
		out.Details = append(out.Details, mapDetailRow(&detailRows[i]))
	}
	out.Payments = make([]orderuc.OrderPayment, 0, len(paymentRows))
	for i := range paymentRows {
		out.Payments = append(out.Payments, mapPaymentRow(&paymentRows[i]))
	}
	return out, nil
}

func mapOrderRow(r *OrderRow) *orderuc.Order {
	return &orderuc.Order{
		ID:              r.ID,
		LocationID:      r.LocationID,
		CustomerID:      r.CustomerID,
		Status:          r.Status,
		OrderDate:       r.OrderDate,
		CreatedDate:     r.CreatedDate,
		CreatedByUserID: r.CreatedByUserID,
		Total:           r.Total,
		SubTotal:        r.SubTotal,
		TotalDiscount:   r.TotalDiscount,
		Notes:           r.Notes,
		PoNumber:        r.PoNumber,
		OriginalOrderID: r.OriginalOrderID,
		Email:           r.Email,
		RowVersion:      r.RowVersion,
	}
}

func mapDetailRow(r *OrderDetailRow) orderuc.Detail {
	return orderuc.Detail{
		ID:        r.ID,
		OrderID:   r.OrderID,
		ProductID: r.ProductID,
		Amount:    r.Amount,
		UnitPrice: r.UnitPrice,
		LineTotal: r.LineTotal,
	}
}

func mapPaymentRow(r *OrderPaymentRow) orderuc.OrderPayment {
	return orderuc.OrderPayment{
		ID:              r.ID,
		OrderID:         r.OrderID,
		CreatedByUserID: r.CreatedByUserID,
		CreatedDate:     r.CreatedDate,
		PaymentDate:     r.PaymentDate,
		PaymentAmount:   r.PaymentAmount,
		PaymentTypeID:   r.PaymentTypeID,
	}
}

// Compile-time check
var _ orderuc.Store = (*OrderStoreAdapter)(nil)
