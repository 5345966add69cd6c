package coupon

import "errors"

var (
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrUsageLimitReached = errors.New("coupon usage limit reached")
)
