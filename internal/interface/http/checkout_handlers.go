package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	domcart "example.com/storefront-checkout/internal/domain/cart"
	dompricing "example.com/storefront-checkout/internal/domain/pricing"
	checkoutuc "example.com/storefront-checkout/internal/usecase/checkout"
)

type quoteItem struct {
	ProductID  int64   `json:"product_id" validate:"required,gt=0"`
	CategoryID int64   `json:"category_id" validate:"gte=0"`
	UnitPrice  float64 `json:"unit_price" validate:"gte=0"`
	Quantity   int64   `json:"quantity" validate:"required,gt=0"`
}

type quoteRequest struct {
	Items      []quoteItem `json:"items" validate:"required,min=1,dive"`
	CouponCode string      `json:"coupon_code"`
	GiftWrap   bool        `json:"gift_wrap"`
}

func (a *API) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	quote, err := a.checkoutSvc.Quote(r.Context(), callerUserID(r), toCart(r, req.Items), req.CouponCode, req.GiftWrap)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapQuote(quote))
}

func (a *API) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	order, err := a.checkoutSvc.PlaceOrder(r.Context(), callerUserID(r), toCart(r, req.Items), req.CouponCode, req.GiftWrap)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"quote": mapQuote(order.Quote),
		"payment": map[string]any{
			"order_id": order.Payment.OrderID,
			"amount":   order.Payment.Amount,
			"currency": order.Payment.Currency,
			"key":      order.Payment.Key,
		},
	})
}

func callerUserID(r *http.Request) int64 {
	if user := getAuthUser(r.Context()); user != nil {
		return user.UserID
	}
	return 0
}

func toCart(r *http.Request, items []quoteItem) domcart.Cart {
	lines := make([]domcart.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, domcart.Line{
			ProductID:  item.ProductID,
			CategoryID: item.CategoryID,
			UnitPrice:  decimal.NewFromFloat(item.UnitPrice),
			Quantity:   item.Quantity,
		})
	}
	return domcart.Cart{UserID: callerUserID(r), Lines: lines}
}

func mapQuote(q *checkoutuc.Quote) map[string]any {
	out := map[string]any{
		"breakdown":       mapBreakdown(q.Breakdown),
		"discount_source": q.DiscountSource,
	}
	if q.Coupon != nil {
		out["coupon"] = map[string]any{
			"valid":    q.Coupon.Valid,
			"message":  q.Coupon.Message,
			"discount": q.Coupon.Discount.InexactFloat64(),
		}
	}
	if q.Rule != nil {
		out["rule"] = map[string]any{
			"id":        q.Rule.Rule.ID,
			"rule_type": q.Rule.Rule.RuleType,
			"discount":  q.Rule.Discount.InexactFloat64(),
		}
	}
	return out
}

func mapBreakdown(b dompricing.Breakdown) map[string]any {
	return map[string]any{
		"subtotal":                b.Subtotal.InexactFloat64(),
		"coupon_discount":         b.CouponDiscount.InexactFloat64(),
		"gift_wrap_cost":          b.GiftWrapCost.InexactFloat64(),
		"shipping_cost":           b.ShippingCost.InexactFloat64(),
		"taxable_amount":          b.TaxableAmount.InexactFloat64(),
		"tax":                     b.Tax.InexactFloat64(),
		"total":                   b.Total.InexactFloat64(),
		"has_free_shipping":       b.HasFreeShipping,
		"amount_to_free_shipping": b.AmountToFreeShipping.InexactFloat64(),
	}
}
