package checkout

import (
	"context"

	"github.com/shopspring/decimal"

	domcart "example.com/storefront-checkout/internal/domain/cart"
	domcoupon "example.com/storefront-checkout/internal/domain/coupon"
	dompricing "example.com/storefront-checkout/internal/domain/pricing"
	couponuc "example.com/storefront-checkout/internal/usecase/coupon"
	paymentuc "example.com/storefront-checkout/internal/usecase/payment"
	promouc "example.com/storefront-checkout/internal/usecase/promotion"
)

type CouponValidator interface {
	Validate(ctx context.Context, code string, orderAmount decimal.Decimal, userID int64) (couponuc.Result, error)
	Apply(ctx context.Context, cpn *domcoupon.Coupon, orderID string, userID int64, discount decimal.Decimal) error
}

type RuleResolver interface {
	SelectApplicableRule(ctx context.Context, c domcart.Cart) (*promouc.Applied, error)
}

type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*paymentuc.CreateOrderResult, error)
}

const (
	DiscountSourceNone   = "none"
	DiscountSourceRule   = "rule"
	DiscountSourceCoupon = "coupon"
)

// Quote is a priced, read-only view of a checkout attempt with the
// provenance of the applied discount.
type Quote struct {
	Breakdown      dompricing.Breakdown
	Coupon         *couponuc.Result
	Rule           *promouc.Applied
	DiscountSource string
}

type Order struct {
	Quote   *Quote
	Payment *paymentuc.CreateOrderResult
}

type Service struct {
	coupons  CouponValidator
	rules    RuleResolver
	payments PaymentGateway
	pricing  dompricing.Config
}

func NewService(coupons CouponValidator, rules RuleResolver, payments PaymentGateway, pricing dompricing.Config) *Service {
	return &Service{
		coupons:  coupons,
		rules:    rules,
		payments: payments,
		pricing:  pricing,
	}
}

// Quote computes the authoritative total for a cart. Automatic rules and a
// redeemed coupon do not stack: a valid coupon wins over the rule discount.
func (s *Service) Quote(ctx context.Context, userID int64, c domcart.Cart, couponCode string, giftWrap bool) (*Quote, error) {
	subtotal := c.Subtotal()

	applied, err := s.rules.SelectApplicableRule(ctx, c)
	if err != nil {
		return nil, err
	}

	q := &Quote{Rule: applied, DiscountSource: DiscountSourceNone}
	discount := decimal.Zero
	if applied != nil {
		discount = applied.Discount
		q.DiscountSource = DiscountSourceRule
	}

	if couponCode != "" {
		res, err := s.coupons.Validate(ctx, couponCode, subtotal, userID)
		if err != nil {
			return nil, err
		}
		q.Coupon = &res
		if res.Valid {
			discount = res.Discount
			q.DiscountSource = DiscountSourceCoupon
		}
	}

	gift := decimal.Zero
	if giftWrap {
		gift = s.pricing.GiftWrapCost
	}
	q.Breakdown = s.pricing.Compute(subtotal, discount, gift)
	return q, nil
}

// PlaceOrder quotes the cart and mints a provider order for that exact total.
// The coupon use is recorded only after the provider order exists, so an
// upstream failure never burns a redemption.
func (s *Service) PlaceOrder(ctx context.Context, userID int64, c domcart.Cart, couponCode string, giftWrap bool) (*Order, error) {
	q, err := s.Quote(ctx, userID, c, couponCode, giftWrap)
	if err != nil {
		return nil, err
	}

	res, err := s.payments.CreateOrder(ctx, q.Breakdown.Total, "", "")
	if err != nil {
		return nil, err
	}

	if q.DiscountSource == DiscountSourceCoupon && q.Coupon != nil && q.Coupon.Valid {
		if err := s.coupons.Apply(ctx, q.Coupon.Coupon, res.OrderID, userID, q.Coupon.Discount); err != nil {
			return nil, err
		}
	}

	return &Order{Quote: q, Payment: res}, nil
}
