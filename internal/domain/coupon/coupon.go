package coupon

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountPercentage, DiscountFixed:
		return true
	default:
		return false
	}
}

type Coupon struct {
	ID             int64
	Code           string
	DiscountType   DiscountType
	DiscountValue  decimal.Decimal
	MinOrderAmount decimal.Decimal
	MaxUses        *int64
	MaxUsesPerUser *int64
	StartsAt       time.Time
	ExpiresAt      *time.Time
	IsActive       bool
	UsesCount      int64
	CreatedAt      time.Time
}

// Discount computes the amount taken off orderAmount. The result never
// exceeds the order amount. An unrecognized discount type yields zero.
func (c *Coupon) Discount(orderAmount decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch c.DiscountType {
	case DiscountPercentage:
		discount = orderAmount.Mul(c.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
	case DiscountFixed:
		discount = c.DiscountValue
	default:
		return decimal.Zero
	}
	if discount.GreaterThan(orderAmount) {
		return orderAmount
	}
	return discount
}

type Use struct {
	ID              int64
	CouponID        int64
	UserID          int64
	OrderID         string
	DiscountApplied decimal.Decimal
	UsedAt          time.Time
}
