package coupon

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domcoupon "example.com/storefront-checkout/internal/domain/coupon"
)

type userKey struct {
	couponID int64
	userID   int64
}

type mockCouponRepository struct {
	coupons    map[string]*domcoupon.Coupon
	usesByUser map[userKey]int64
	recorded   []domcoupon.Use
	recordErr  error
}

func newMockCouponRepository(coupons ...*domcoupon.Coupon) *mockCouponRepository {
	m := &mockCouponRepository{
		coupons:    make(map[string]*domcoupon.Coupon),
		usesByUser: make(map[userKey]int64),
	}
	for _, c := range coupons {
		m.coupons[strings.ToUpper(c.Code)] = c
	}
	return m
}

func (m *mockCouponRepository) GetByCode(ctx context.Context, code string) (*domcoupon.Coupon, error) {
	if c, ok := m.coupons[strings.ToUpper(code)]; ok {
		cloned := *c
		return &cloned, nil
	}
	return nil, domcoupon.ErrCouponNotFound
}

func (m *mockCouponRepository) CountUses(ctx context.Context, couponID, userID int64) (int64, error) {
	return m.usesByUser[userKey{couponID, userID}], nil
}

func (m *mockCouponRepository) RecordUse(ctx context.Context, use domcoupon.Use) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	for _, c := range m.coupons {
		if c.ID != use.CouponID {
			continue
		}
		if c.MaxUses != nil && c.UsesCount >= *c.MaxUses {
			return domcoupon.ErrUsageLimitReached
		}
		c.UsesCount++
		m.usesByUser[userKey{use.CouponID, use.UserID}]++
		m.recorded = append(m.recorded, use)
		return nil
	}
	return domcoupon.ErrCouponNotFound
}

type noopCache struct{}

func (noopCache) Get(_ context.Context, _ string) (*domcoupon.Coupon, bool, error) {
	return nil, false, nil
}

func (noopCache) Set(_ context.Context, _ string, _ *domcoupon.Coupon, _ time.Duration) error {
	return nil
}

func (noopCache) Delete(_ context.Context, _ string) error { return nil }

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *Service {
	svc := NewService(repo, noopCache{}, 20*time.Second)
	svc.now = func() time.Time { return testNow }
	return svc
}

func int64Ptr(v int64) *int64 { return &v }

func save20() *domcoupon.Coupon {
	return &domcoupon.Coupon{
		ID:             1,
		Code:           "SAVE20",
		DiscountType:   domcoupon.DiscountPercentage,
		DiscountValue:  decimal.NewFromInt(20),
		MinOrderAmount: decimal.NewFromInt(50),
		StartsAt:       testNow.Add(-24 * time.Hour),
		IsActive:       true,
	}
}

func TestValidate_UnknownCode(t *testing.T) {
	svc := newTestService(newMockCouponRepository())

	result, err := svc.Validate(context.Background(), "NOPE", decimal.NewFromInt(100), 1)

	require.NoError(t, err)
	require.False(t, result.Valid)
	require.Equal(t, MsgInvalidCode, result.Message)
}

func TestValidate_InactiveCoupon(t *testing.T) {
	cpn := save20()
	cpn.IsActive = false
	svc := newTestService(newMockCouponRepository(cpn))

	result, err := svc.Validate(context.Background(), "SAVE20", decimal.NewFromInt(100), 1)

	require.NoError(t, err)
	require.False(t, result.Valid)
	require.Equal(t, MsgInvalidCode, result.Message)
}

func TestValidate_CodeIsCaseInsensitive(t *testing.T) {
	svc := newTestService(newMockCouponRepository(save20()))

	result, err := svc.Validate(context.Background(), "  save20 ", decimal.NewFromInt(100), 1)

	require.NoError(t, err)
	require.True(t, result.Valid)
}

func TestValidate_TimeWindow(t *testing.T) {
	notYet := save20()
	notYet.Code = "SOON"
	notYet.ID = 2
	notYet.StartsAt = testNow.Add(time.Hour)

	expired := save20()
	expired.Code = "GONE"
	expired.ID = 3
	past := testNow.Add(-time.Hour)
	expired.ExpiresAt = &past

	svc := newTestService(newMockCouponRepository(notYet, expired))

	result, err := svc.Validate(context.Background(), "SOON", decimal.NewFromInt(100), 1)
	require.NoError(t, err)
	require.Equal(t, MsgNotYetActive, result.Message)

	result, err = svc.Validate(context.Background(), "GONE", decimal.NewFromInt(100), 1)
	require.NoError(t, err)
	require.Equal(t, MsgExpired, result.Message)
}

func TestValidate_BelowMinimumOrderAmount(t *testing.T) {
	svc := newTestService(newMockCouponRepository(save20()))

	// SAVE20 requires a 50 minimum; 40 is under it
	result, err := svc.Validate(context.Background(), "SAVE20", decimal.NewFromInt(40), 1)

	require.NoError(t, err)
	require.False(t, result.Valid)
	require.Equal(t, MsgBelowMinimum, result.Message)
}

func TestValidate_MinOrderAmountIsMonotonic(t *testing.T) {
	cpn := save20()
	cpn.MinOrderAmount = decimal.NewFromInt(40)
	repo := newMockCouponRepository(cpn)
	svc := newTestService(repo)

	result, err := svc.Validate(context.Background(), "SAVE20", decimal.NewFromInt(40), 1)
	require.NoError(t, err)
	require.True(t, result.Valid)

	// raising the minimum above the order amount flips the outcome
	cpn.MinOrderAmount = decimal.NewFromInt(41)
	result, err = svc.Validate(context.Background(), "SAVE20", decimal.NewFromInt(40), 1)
	require.NoError(t, err)
	require.False(t, result.Valid)
	require.Equal(t, MsgBelowMinimum, result.Message)
}

func TestValidate_PercentageDiscount(t *testing.T) {
	svc := newTestService(newMockCouponRepository(save20()))

	result, err := svc.Validate(context.Background(), "SAVE20", decimal.NewFromInt(80), 1)

	require.NoError(t, err)
	require.True(t, result.Valid)
	require.True(t, result.Discount.Equal(decimal.NewFromInt(16)), "20%% of 80, got %s", result.Discount)
}

func TestValidate_FixedDiscountCappedAtOrderAmount(t *testing.T) {
	cpn := save20()
	cpn.DiscountType = domcoupon.DiscountFixed
	cpn.DiscountValue = decimal.NewFromInt(75)
	svc := newTestService(newMockCouponRepository(cpn))

	result, err := svc.Validate(context.Background(), "SAVE20", decimal.NewFromInt(60), 1)

	require.NoError(t, err)
	require.True(t, result.Valid)
	require.True(t, result.Discount.Equal(decimal.NewFromInt(60)), "got %s", result.Discount)
}

func TestValidate_GlobalUsageLimitBoundary(t *testing.T) {
	cpn := save20()
	cpn.MaxUses = int64Ptr(3)
	cpn.UsesCount = 2
	repo := newMockCouponRepository(cpn)
	svc := newTestService(repo)

	// one use left
	result, err := svc.Validate(context.Background(), "SAVE20", decimal.NewFromInt(100), 1)
	require.NoError(t, err)
	require.True(t, result.Valid)

	// consume it
	require.NoError(t, svc.Apply(context.Background(), result.Coupon, "order_1", 1, result.Discount))

	result, err = svc.Validate(context.Background(), "SAVE20", decimal.NewFromInt(100), 1)
	require.NoError(t, err)
	require.False(t, result.Valid)
	require.Equal(t, MsgUsageLimit, result.Message)
}

func TestValidate_PerUserLimit(t *testing.T) {
	cpn := save20()
	cpn.MaxUsesPerUser = int64Ptr(1)
	repo := newMockCouponRepository(cpn)
	repo.usesByUser[userKey{1, 7}] = 1

	svc := newTestService(repo)

	result, err := svc.Validate(context.Background(), "SAVE20", decimal.NewFromInt(100), 7)
	require.NoError(t, err)
	require.False(t, result.Valid)
	require.Equal(t, MsgAlreadyUsed, result.Message)

	// a different user is unaffected
	result, err = svc.Validate(context.Background(), "SAVE20", decimal.NewFromInt(100), 8)
	require.NoError(t, err)
	require.True(t, result.Valid)
}

func TestValidate_AnonymousRejectedWhenPerUserCapSet(t *testing.T) {
	cpn := save20()
	cpn.MaxUsesPerUser = int64Ptr(1)
	svc := newTestService(newMockCouponRepository(cpn))

	result, err := svc.Validate(context.Background(), "SAVE20", decimal.NewFromInt(100), 0)

	require.NoError(t, err)
	require.False(t, result.Valid)
	require.Equal(t, MsgSignInRequired, result.Message)
}

func TestApply_RecordsUse(t *testing.T) {
	repo := newMockCouponRepository(save20())
	svc := newTestService(repo)

	result, err := svc.Validate(context.Background(), "SAVE20", decimal.NewFromInt(80), 7)
	require.NoError(t, err)
	require.True(t, result.Valid)

	err = svc.Apply(context.Background(), result.Coupon, "order_42", 7, result.Discount)
	require.NoError(t, err)

	require.Len(t, repo.recorded, 1)
	use := repo.recorded[0]
	require.Equal(t, int64(1), use.CouponID)
	require.Equal(t, int64(7), use.UserID)
	require.Equal(t, "order_42", use.OrderID)
	require.True(t, use.DiscountApplied.Equal(decimal.NewFromInt(16)))
	require.Equal(t, testNow, use.UsedAt)
}

func TestApply_SurfacesExhaustionFromStore(t *testing.T) {
	cpn := save20()
	cpn.MaxUses = int64Ptr(1)
	cpn.UsesCount = 1
	repo := newMockCouponRepository(cpn)
	svc := newTestService(repo)

	// a concurrent redemption exhausted the coupon between validate and apply
	err := svc.Apply(context.Background(), cpn, "order_1", 7, decimal.NewFromInt(10))
	require.ErrorIs(t, err, domcoupon.ErrUsageLimitReached)
}
