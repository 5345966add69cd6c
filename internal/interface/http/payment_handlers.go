package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	dompayment "example.com/storefront-checkout/internal/domain/payment"
)

type createPaymentOrderRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
}

type verifyPaymentRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

func (a *API) handleCreatePaymentOrder(w http.ResponseWriter, r *http.Request) {
	var req createPaymentOrderRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	result, err := a.paymentSvc.CreateOrder(r.Context(), decimal.NewFromFloat(req.Amount), req.Currency, req.Receipt)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"order_id": result.OrderID,
		"amount":   result.Amount,
		"currency": result.Currency,
		"key":      result.Key,
	})
}

func (a *API) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	verified, err := a.paymentSvc.VerifyPayment(r.Context(), dompayment.Verification{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"verified": verified})
}
