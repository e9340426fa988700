package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRow struct {
	ID              string
	LocationID      string
	CustomerID      string
	Status          string
	OrderDate       time.Time
	CreatedDate     time.Time
	CreatedByUserID string
	Total           string
	SubTotal        string
	TotalDiscount   string
	Notes           *string
	PoNumber        *string
	OriginalOrderID *string
	Email           *string
	RowVersion      int
}

type OrderDetailRow struct {
	ID        string
	OrderID   string
	ProductID string
	Amount    string
	UnitPrice string
	LineTotal string
}

type OrderPaymentRow struct {
	ID              string
	OrderID         string
	CreatedByUserID string
	CreatedDate     time.Time
	PaymentDate     time.Time
	PaymentAmount   string
	PaymentTypeID   int
}

type OrderRepo struct {
	db *pgxpool.Pool
}

func NewOrderRepo(db *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.db.BeginTx(ctx, pgx.TxOptions{})
}

type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const orderColumns = `
  id::text, location_id::text, customer_id::text, status,
  order_date, created_date, created_by_user_id::text,
  total::text, sub_total::text, total_discount::text,
  notes, po_number, original_order_id::text, email, row_version`

func scanOrderRow(row pgx.Row) (*OrderRow, error) {
	var out OrderRow
	if err := row.Scan(
		&out.ID,
		&out.LocationID,
		&out.CustomerID,
		&out.Status,
		&out.OrderDate,
		&out.CreatedDate,
		&out.CreatedByUserID,
		&out.Total,
		&out.SubTotal,
		&out.TotalDiscount,
		&out.Notes,
		&out.PoNumber,
		&out.OriginalOrderID,
		&out.Email,
		&out.RowVersion,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func getOrderHeader(ctx context.Context, q queryer, orderID string) (*OrderRow, error) {
	const sql = `SELECT` + orderColumns + `
FROM orders
WHERE id = $1::uuid;
`
	return scanOrderRow(q.QueryRow(ctx, sql, orderID))
}

func getOrderStatus(ctx context.Context, q queryer, orderID string) (string, error) {
	const sql = `SELECT status FROM orders WHERE id = $1::uuid;`
	var status string
	if err := q.QueryRow(ctx, sql, orderID).Scan(&status); err != nil {
		return "", err
	}
	return status, nil
}

func orderExists(ctx context.Context, q queryer, orderID string) (bool, error) {
	const sql = `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1::uuid);`
	var exists bool
	if err := q.QueryRow(ctx, sql, orderID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func findUserByAuthCode(ctx context.Context, q queryer, authCode string) (string, error) {
	const sql = `
SELECT id::text
FROM users
WHERE auth_code = $1
  AND is_active
LIMIT 1;
`
	var id string
	if err := q.QueryRow(ctx, sql, authCode).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func listOrderDetails(ctx context.Context, q queryer, orderID string) ([]OrderDetailRow, error) {
	const sql = `
SELECT id::text, order_id::text, product_id::text, amount::text, unit_price::text, line_total::text
FROM order_details
WHERE order_id = $1::uuid
ORDER BY created_at ASC;
`
	rows, err := q.Query(ctx, sql, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OrderDetailRow, 0, 8)
	for rows.Next() {
		var d OrderDetailRow
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.Amount, &d.UnitPrice, &d.LineTotal); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func listOrderPayments(ctx context.Context, q queryer, orderID string) ([]OrderPaymentRow, error) {
	const sql = `
SELECT id::text, order_id::text, created_by_user_id::text,
       created_date, payment_date, payment_amount::text, payment_type_id
FROM order_payments
WHERE order_id = $1::uuid
ORDER BY created_date ASC;
`
	rows, err := q.Query(ctx, sql, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OrderPaymentRow, 0, 2)
	for rows.Next() {
		var p OrderPaymentRow
		if err := rows.Scan(&p.ID, &p.OrderID, &p.CreatedByUserID, &p.CreatedDate, &p.PaymentDate, &p.PaymentAmount, &p.PaymentTypeID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// now() is transaction_timestamp in postgres, so every date stamped inside
// one commit reads the same clock value.
func insertOrder(
	ctx context.Context,
	tx pgx.Tx,
	locationID, customerID, status, actorUserID string,
	total, subTotal, totalDiscount string,
	notes, poNumber, originalOrderID, email *string,
) (*OrderRow, error) {
	const sql = `
INSERT INTO orders (
  location_id, customer_id, status, order_date, created_date, created_by_user_id,
  total, sub_total, total_discount, notes, po_number, original_order_id, email
)
VALUES (
  $1::uuid, $2::uuid, $3, now(), now(), $4::uuid,
  $5::numeric, $6::numeric, COALESCE($7, '0')::numeric, $8, $9, $10::uuid, $11
)
RETURNING` + orderColumns + `;
`
	row := tx.QueryRow(ctx, sql,
		locationID, customerID, status, actorUserID,
		total, subTotal, nullIfEmpty(totalDiscount), notes, poNumber, originalOrderID, email,
	)
	return scanOrderRow(row)
}

func insertOrderDetail(ctx context.Context, tx pgx.Tx, orderID, productID, amount, unitPrice, lineTotal string) (*OrderDetailRow, error) {
	const sql = `
INSERT INTO order_details (order_id, product_id, amount, unit_price, line_total)
VALUES ($1::uuid, $2::uuid, $3::numeric, $4::numeric, $5::numeric)
RETURNING id::text, order_id::text, product_id::text, amount::text, unit_price::text, line_total::text;
`
	row := tx.QueryRow(ctx, sql, orderID, productID, amount, unitPrice, lineTotal)

	var out OrderDetailRow
	if err := row.Scan(&out.ID, &out.OrderID, &out.ProductID, &out.Amount, &out.UnitPrice, &out.LineTotal); err != nil {
		return nil, err
	}
	return &out, nil
}

func insertOrderPayment(ctx context.Context, tx pgx.Tx, orderID, actorUserID, amount string, paymentTypeID int) (*OrderPaymentRow, error) {
	const sql = `
INSERT INTO order_payments (order_id, created_by_user_id, created_date, payment_date, payment_amount, payment_type_id)
VALUES ($1::uuid, $2::uuid, now(), now(), $3::numeric, $4)
RETURNING id::text, order_id::text, created_by_user_id::text,
          created_date, payment_date, payment_amount::text, payment_type_id;
`
	row := tx.QueryRow(ctx, sql, orderID, actorUserID, amount, paymentTypeID)

	var out OrderPaymentRow
	if err := row.Scan(&out.ID, &out.OrderID, &out.CreatedByUserID, &out.CreatedDate, &out.PaymentDate, &out.PaymentAmount, &out.PaymentTypeID); err != nil {
		return nil, err
	}
	return &out, nil
}

// applyInventoryDelta is the only writer of product_inventory. The update is
// relative so concurrent orders on the same (product, location) row both
// land. A line whose product has no inventory row at the location affects
// zero rows, which is valid: not every SKU is tracked everywhere, and this
// engine never provisions rows.
func applyInventoryDelta(ctx context.Context, tx pgx.Tx, productID, locationID, amount string, sign int) error {
	const sql = `
UPDATE product_inventory
SET balance = balance + ($3::numeric * $4),
    modified_date = now()
WHERE product_id = $1::uuid
  AND location_id = $2::uuid;
`
	_, err := tx.Exec(ctx, sql, productID, locationID, amount, sign)
	return err
}

// updateOrderStatusGuarded writes the new status only when the row version
// still matches the one read at load time. pgx.ErrNoRows means the guard
// missed: either a concurrent writer bumped the version or the order is gone.
func updateOrderStatusGuarded(ctx context.Context, tx pgx.Tx, orderID string, fromVersion int, newStatus string) (*OrderRow, error) {
	const sql = `
UPDATE orders
SET status = $3,
    row_version = row_version + 1
WHERE id = $1::uuid
  AND row_version = $2
RETURNING` + orderColumns + `;
`
	return scanOrderRow(tx.QueryRow(ctx, sql, orderID, fromVersion, newStatus))
}

func updateOrderInfo(ctx context.Context, q queryer, orderID string, notes, poNumber *string) (*OrderRow, error) {
	const sql = `
UPDATE orders
SET notes = $2,
    po_number = $3,
    row_version = row_version + 1
WHERE id = $1::uuid
RETURNING` + orderColumns + `;
`
	return scanOrderRow(q.QueryRow(ctx, sql, orderID, notes, poNumber))
}

func listOrders(ctx context.Context, q queryer, limit, offset int, locationID, customerID *string) ([]OrderRow, error) {
	const sql = `
SELECT` + orderColumns + `
FROM orders
WHERE ($3::uuid IS NULL OR location_id = $3::uuid)
  AND ($4::uuid IS NULL OR customer_id = $4::uuid)
ORDER BY created_date DESC
LIMIT $1 OFFSET $2;
`
	rows, err := q.Query(ctx, sql, limit, offset, locationID, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OrderRow, 0, limit)
	for rows.Next() {
		o, err := scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
