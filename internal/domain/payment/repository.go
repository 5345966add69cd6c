package payment

import "context"

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByOrderID(ctx context.Context, orderID string) (*Order, error)
	MarkPaid(ctx context.Context, orderID, paymentID string) error
	MarkFailed(ctx context.Context, orderID string) error
}
