package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRow struct {
	ID              string
	OrderID         string
	CreatedByUserID string
	CreatedDate     time.Time
	PaymentDate     time.Time
	PaymentAmount   string
	PaymentTypeID   int
}

type OrderPaymentStateRow struct {
	OrderID    string
	PaidAmount string
	Total      string
	Status     string
}

type PaymentRepo struct {
	db *pgxpool.Pool
}

func NewPaymentRepo(db *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{db: db}
}

func (r *PaymentRepo) ListByOrder(ctx context.Context, orderID string) ([]PaymentRow, error) {
	const q = `
SELECT id::text, order_id::text, created_by_user_id::text,
       created_date, payment_date, payment_amount::text, payment_type_id
FROM order_payments
WHERE order_id = $1::uuid
ORDER BY payment_date DESC, created_date DESC;
`
	rows, err := r.db.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PaymentRow, 0, 4)
	for rows.Next() {
		var p PaymentRow
		if err := rows.Scan(&p.ID, &p.OrderID, &p.CreatedByUserID, &p.CreatedDate, &p.PaymentDate, &p.PaymentAmount, &p.PaymentTypeID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PaymentRepo) GetOrderPaymentState(ctx context.Context, orderID string) (*OrderPaymentStateRow, error) {
	const q = `
SELECT o.id::text,
       COALESCE(SUM(p.payment_amount), 0)::text AS paid_amount,
       o.total::text,
       o.status
FROM orders o
LEFT JOIN order_payments p ON p.order_id = o.id
WHERE o.id = $1::uuid
GROUP BY o.id, o.total, o.status;
`
	var out OrderPaymentStateRow
	if err := r.db.QueryRow(ctx, q, orderID).Scan(&out.OrderID, &out.PaidAmount, &out.Total, &out.Status); err != nil {
		return nil, err
	}
	return &out, nil
}
