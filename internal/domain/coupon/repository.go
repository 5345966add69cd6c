package coupon

import "context"

type Repository interface {
	// GetByCode matches codes case-insensitively.
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	CountUses(ctx context.Context, couponID, userID int64) (int64, error)
	// RecordUse inserts the use row and increments the coupon's uses_count in
	// one transaction, re-checking max_uses under a row lock. Returns
	// ErrUsageLimitReached when a concurrent redemption exhausted the coupon.
	RecordUse(ctx context.Context, use Use) error
}
