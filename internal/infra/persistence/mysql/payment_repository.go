package mysql

import (
	"context"
	"database/sql"
	"errors"

	dompayment "example.com/storefront-checkout/internal/domain/payment"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, o *dompayment.Order) error {
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO payment_orders (order_id, amount, currency, receipt, status, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `, o.OrderID, o.Amount, o.Currency, o.Receipt, o.Status, o.CreatedAt)
	if err != nil {
		return err
	}
	o.ID, _ = res.LastInsertId()
	return nil
}

func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*dompayment.Order, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, order_id, amount, currency, receipt, status, payment_id, created_at
        FROM payment_orders WHERE order_id = ?
    `, orderID)

	var o dompayment.Order
	var paymentID sql.NullString
	err := row.Scan(&o.ID, &o.OrderID, &o.Amount, &o.Currency, &o.Receipt, &o.Status, &paymentID, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dompayment.ErrOrderNotFound
		}
		return nil, err
	}
	o.PaymentID = paymentID.String
	return &o, nil
}

func (r *PaymentRepository) MarkPaid(ctx context.Context, orderID, paymentID string) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE payment_orders SET status = ?, payment_id = ?
        WHERE order_id = ?
    `, dompayment.StatusPaid, paymentID, orderID)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return dompayment.ErrOrderNotFound
	}
	return nil
}

func (r *PaymentRepository) MarkFailed(ctx context.Context, orderID string) error {
	// a failed verification never downgrades an order that already paid
	res, err := r.db.ExecContext(ctx, `
        UPDATE payment_orders SET status = ?
        WHERE order_id = ? AND status <> ?
    `, dompayment.StatusFailed, orderID, dompayment.StatusPaid)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return dompayment.ErrOrderNotFound
	}
	return nil
}
