package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dompayment "example.com/storefront-checkout/internal/domain/payment"
)

type Provider interface {
	Configured() bool
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*dompayment.ProviderOrder, error)
}

type Verifier interface {
	Configured() bool
	Verify(orderID, paymentID, signature string) bool
}

type Repository interface {
	Create(ctx context.Context, o *dompayment.Order) error
	MarkPaid(ctx context.Context, orderID, paymentID string) error
	MarkFailed(ctx context.Context, orderID string) error
}

type CreateOrderResult struct {
	OrderID  string
	Amount   int64
	Currency string
	Key      string
}

type Service struct {
	provider   Provider
	verifier   Verifier
	orders     Repository
	publicKey  string
	currency   string
	now        func() time.Time
	newReceipt func() string
}

func NewService(provider Provider, verifier Verifier, orders Repository, publicKey, currency string) *Service {
	s := &Service{
		provider:  provider,
		verifier:  verifier,
		orders:    orders,
		publicKey: publicKey,
		currency:  currency,
		now:       time.Now,
	}
	s.newReceipt = func() string {
		return fmt.Sprintf("rcpt_%d_%s", s.now().Unix(), uuid.NewString()[:8])
	}
	return s
}

// CreateOrder mints a provider-side order for the given amount in major
// currency units. The call is single-shot: a timeout surfaces as a provider
// error and is never retried here, to avoid double-charging. Reconciliation
// after a cancelled request keys off the receipt.
func (s *Service) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*CreateOrderResult, error) {
	if !s.provider.Configured() {
		return nil, dompayment.ErrNotConfigured
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, dompayment.ErrInvalidAmount
	}
	if currency == "" {
		currency = s.currency
	}
	if receipt == "" {
		receipt = s.newReceipt()
	}

	minor := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	po, err := s.provider.CreateOrder(ctx, minor, currency, receipt)
	if err != nil {
		return nil, err
	}

	err = s.orders.Create(ctx, &dompayment.Order{
		OrderID:   po.ID,
		Amount:    po.Amount,
		Currency:  po.Currency,
		Receipt:   receipt,
		Status:    dompayment.StatusCreated,
		CreatedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}

	return &CreateOrderResult{
		OrderID:  po.ID,
		Amount:   po.Amount,
		Currency: po.Currency,
		Key:      s.publicKey,
	}, nil
}

// VerifyPayment recomputes the callback signature server-side and compares.
// Only an exact match flips the order to paid; the client's own claim of
// success is never trusted. A mismatch is a result, not an error.
//
// The verdict depends on the signature alone: a valid callback for an order
// with no local row (cancelled mid-create, or a replay of an already-paid
// order) is still verified, it just has nothing to update.
func (s *Service) VerifyPayment(ctx context.Context, v dompayment.Verification) (bool, error) {
	if !s.verifier.Configured() {
		return false, dompayment.ErrNotConfigured
	}
	if !v.Complete() {
		return false, dompayment.ErrMissingFields
	}

	if !s.verifier.Verify(v.OrderID, v.PaymentID, v.Signature) {
		if err := s.orders.MarkFailed(ctx, v.OrderID); err != nil && !errors.Is(err, dompayment.ErrOrderNotFound) {
			return false, err
		}
		return false, nil
	}

	if err := s.orders.MarkPaid(ctx, v.OrderID, v.PaymentID); err != nil && !errors.Is(err, dompayment.ErrOrderNotFound) {
		return false, err
	}
	return true, nil
}
