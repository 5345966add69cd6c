package http

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type validateCouponRequest struct {
	Code        string  `json:"code" validate:"required"`
	OrderAmount float64 `json:"order_amount" validate:"required,gt=0"`
}

func (a *API) handleValidateCoupon(w http.ResponseWriter, r *http.Request) {
	var req validateCouponRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	result, err := a.couponSvc.Validate(r.Context(), req.Code, decimal.NewFromFloat(req.OrderAmount), callerUserID(r))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	payload := map[string]any{
		"valid":   result.Valid,
		"message": result.Message,
	}
	if result.Valid {
		payload["discount"] = result.Discount.InexactFloat64()
	}
	writeJSON(w, http.StatusOK, payload)
}
