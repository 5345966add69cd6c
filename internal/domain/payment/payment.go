package payment

import "time"

type Status string

const (
	StatusCreated Status = "CREATED"
	StatusPaid    Status = "PAID"
	StatusFailed  Status = "FAILED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusPaid, StatusFailed:
		return true
	default:
		return false
	}
}

// Order tracks a provider-side payment order. Amount is in minor currency
// units (paise, cents). Status moves CREATED -> PAID only through a verified
// callback; anything else ends at FAILED.
type Order struct {
	ID        int64
	OrderID   string
	Amount    int64
	Currency  string
	Receipt   string
	Status    Status
	PaymentID string
	CreatedAt time.Time
}

// ProviderOrder is the provider's response to order creation.
type ProviderOrder struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

// Verification is the triple a client presents after provider checkout.
type Verification struct {
	OrderID   string
	PaymentID string
	Signature string
}

func (v Verification) Complete() bool {
	return v.OrderID != "" && v.PaymentID != "" && v.Signature != ""
}
