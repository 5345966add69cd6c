package mysql

import (
	"context"
	"database/sql"
	"errors"

	domcoupon "example.com/storefront-checkout/internal/domain/coupon"
)

type CouponRepository struct {
	db *sql.DB
}

func NewCouponRepository(db *sql.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*domcoupon.Coupon, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, code, discount_type, discount_value, min_order_amount,
               max_uses, max_uses_per_user, starts_at, expires_at, is_active,
               uses_count, created_at
        FROM coupons
        WHERE UPPER(code) = UPPER(?)
    `, code)

	var c domcoupon.Coupon
	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.DiscountType,
		&c.DiscountValue,
		&c.MinOrderAmount,
		&c.MaxUses,
		&c.MaxUsesPerUser,
		&c.StartsAt,
		&c.ExpiresAt,
		&c.IsActive,
		&c.UsesCount,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domcoupon.ErrCouponNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CouponRepository) CountUses(ctx context.Context, couponID, userID int64) (int64, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT COUNT(*)
        FROM coupon_uses
        WHERE coupon_id = ? AND user_id = ?
    `, couponID, userID)

	var count int64
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// RecordUse serializes the redemption: the coupon row is locked, max_uses is
// re-checked, and the use row plus counter land in the same transaction. Two
// concurrent redemptions of the last use cannot both succeed.
func (r *CouponRepository) RecordUse(ctx context.Context, use domcoupon.Use) (retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	var usesCount int64
	var maxUses sql.NullInt64
	row := tx.QueryRowContext(ctx, `
        SELECT uses_count, max_uses
        FROM coupons
        WHERE id = ?
        FOR UPDATE
    `, use.CouponID)
	if err = row.Scan(&usesCount, &maxUses); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domcoupon.ErrCouponNotFound
		}
		return err
	}

	if maxUses.Valid && usesCount >= maxUses.Int64 {
		return domcoupon.ErrUsageLimitReached
	}

	_, err = tx.ExecContext(ctx, `
        INSERT INTO coupon_uses (coupon_id, user_id, order_id, discount_applied, used_at)
        VALUES (?, ?, ?, ?, ?)
    `, use.CouponID, use.UserID, use.OrderID, use.DiscountApplied, use.UsedAt)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
        UPDATE coupons SET uses_count = uses_count + 1
        WHERE id = ?
    `, use.CouponID)
	if err != nil {
		return err
	}

	return tx.Commit()
}
