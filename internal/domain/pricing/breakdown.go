package pricing

import "github.com/shopspring/decimal"

type Config struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingCost      decimal.Decimal
	TaxRate               decimal.Decimal
	GiftWrapCost          decimal.Decimal
}

func DefaultConfig() Config {
	return Config{
		FreeShippingThreshold: decimal.NewFromInt(100),
		FlatShippingCost:      decimal.NewFromInt(10),
		TaxRate:               decimal.NewFromFloat(0.08),
		GiftWrapCost:          decimal.NewFromInt(5),
	}
}

// Breakdown is an immutable priced view of an order. Changing an input goes
// through the With* methods, which return a recomputed copy.
type Breakdown struct {
	cfg Config

	Subtotal       decimal.Decimal
	CouponDiscount decimal.Decimal
	GiftWrapCost   decimal.Decimal

	ShippingCost         decimal.Decimal
	TaxableAmount        decimal.Decimal
	Tax                  decimal.Decimal
	Total                decimal.Decimal
	HasFreeShipping      bool
	AmountToFreeShipping decimal.Decimal
}

// Compute derives the full breakdown. The taxable base is floored at zero: a
// discount larger than the subtotal never produces a negative amount.
func (cfg Config) Compute(subtotal, couponDiscount, giftWrapCost decimal.Decimal) Breakdown {
	freeShipping := subtotal.GreaterThanOrEqual(cfg.FreeShippingThreshold)
	shipping := cfg.FlatShippingCost
	if freeShipping {
		shipping = decimal.Zero
	}

	taxable := subtotal.Sub(couponDiscount).Add(giftWrapCost)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	tax := taxable.Mul(cfg.TaxRate).Round(2)
	total := taxable.Add(shipping).Add(tax).Round(2)

	toFree := cfg.FreeShippingThreshold.Sub(subtotal)
	if toFree.IsNegative() {
		toFree = decimal.Zero
	}

	return Breakdown{
		cfg:                  cfg,
		Subtotal:             subtotal,
		CouponDiscount:       couponDiscount,
		GiftWrapCost:         giftWrapCost,
		ShippingCost:         shipping,
		TaxableAmount:        taxable,
		Tax:                  tax,
		Total:                total,
		HasFreeShipping:      freeShipping,
		AmountToFreeShipping: toFree,
	}
}

func (b Breakdown) WithCouponDiscount(discount decimal.Decimal) Breakdown {
	return b.cfg.Compute(b.Subtotal, discount, b.GiftWrapCost)
}

func (b Breakdown) WithGiftWrap() Breakdown {
	return b.cfg.Compute(b.Subtotal, b.CouponDiscount, b.cfg.GiftWrapCost)
}

func (b Breakdown) WithoutGiftWrap() Breakdown {
	return b.cfg.Compute(b.Subtotal, b.CouponDiscount, decimal.Zero)
}
