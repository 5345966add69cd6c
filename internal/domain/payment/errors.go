package payment

import "errors"

var (
	ErrNotConfigured = errors.New("payment provider is not configured")
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrMissingFields = errors.New("order id, payment id and signature are required")
	ErrOrderNotFound = errors.New("payment order not found")
	ErrProvider      = errors.New("payment provider rejected the request")
)
