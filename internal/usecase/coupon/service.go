package coupon

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domcoupon "example.com/storefront-checkout/internal/domain/coupon"
)

type Repository interface {
	GetByCode(ctx context.Context, code string) (*domcoupon.Coupon, error)
	CountUses(ctx context.Context, couponID, userID int64) (int64, error)
	RecordUse(ctx context.Context, use domcoupon.Use) error
}

// Cache is a short-TTL read model for coupon metadata. Entries are dropped on
// Apply so usage-count checks stay close to the store.
type Cache interface {
	Get(ctx context.Context, code string) (*domcoupon.Coupon, bool, error)
	Set(ctx context.Context, code string, c *domcoupon.Coupon, ttl time.Duration) error
	Delete(ctx context.Context, code string) error
}

// Result reports eligibility. Business-rule failures live here, never in the
// error return, so callers can render the message.
type Result struct {
	Valid    bool
	Message  string
	Discount decimal.Decimal
	Coupon   *domcoupon.Coupon
}

const (
	MsgInvalidCode    = "invalid coupon code"
	MsgNotYetActive   = "coupon is not active yet"
	MsgExpired        = "coupon has expired"
	MsgBelowMinimum   = "below minimum order amount"
	MsgUsageLimit     = "coupon usage limit reached"
	MsgAlreadyUsed    = "you have already used this coupon"
	MsgSignInRequired = "sign in to use this coupon"
	MsgCouponApplied  = "coupon applied"
)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewService(repo Repository, cache Cache, cacheTTL time.Duration) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// Validate runs the eligibility checks in order, short-circuiting on the
// first failure. userID 0 means anonymous.
func (s *Service) Validate(ctx context.Context, code string, orderAmount decimal.Decimal, userID int64) (Result, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	cpn, err := s.lookup(ctx, code)
	if err != nil {
		if errors.Is(err, domcoupon.ErrCouponNotFound) {
			return Result{Message: MsgInvalidCode}, nil
		}
		return Result{}, err
	}
	if !cpn.IsActive {
		return Result{Message: MsgInvalidCode}, nil
	}

	now := s.now()
	if now.Before(cpn.StartsAt) {
		return Result{Message: MsgNotYetActive}, nil
	}
	if cpn.ExpiresAt != nil && now.After(*cpn.ExpiresAt) {
		return Result{Message: MsgExpired}, nil
	}

	if orderAmount.LessThan(cpn.MinOrderAmount) {
		return Result{Message: MsgBelowMinimum}, nil
	}

	if cpn.MaxUses != nil && cpn.UsesCount >= *cpn.MaxUses {
		return Result{Message: MsgUsageLimit}, nil
	}

	if cpn.MaxUsesPerUser != nil {
		if userID == 0 {
			return Result{Message: MsgSignInRequired}, nil
		}
		used, err := s.repo.CountUses(ctx, cpn.ID, userID)
		if err != nil {
			return Result{}, err
		}
		if used >= *cpn.MaxUsesPerUser {
			return Result{Message: MsgAlreadyUsed}, nil
		}
	}

	return Result{
		Valid:    true,
		Message:  MsgCouponApplied,
		Discount: cpn.Discount(orderAmount),
		Coupon:   cpn,
	}, nil
}

// Apply records the redemption and bumps the coupon's global counter in one
// transaction. The cached read model is invalidated afterwards.
func (s *Service) Apply(ctx context.Context, cpn *domcoupon.Coupon, orderID string, userID int64, discount decimal.Decimal) error {
	err := s.repo.RecordUse(ctx, domcoupon.Use{
		CouponID:        cpn.ID,
		UserID:          userID,
		OrderID:         orderID,
		DiscountApplied: discount,
		UsedAt:          s.now(),
	})
	if err != nil {
		return err
	}
	// housekeeping; a stale entry only survives until its TTL anyway
	_ = s.cache.Delete(ctx, strings.ToUpper(cpn.Code))
	return nil
}

func (s *Service) lookup(ctx context.Context, code string) (*domcoupon.Coupon, error) {
	if cached, ok, err := s.cache.Get(ctx, code); err == nil && ok {
		return cached, nil
	}
	cpn, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, code, cpn, s.cacheTTL)
	return cpn, nil
}
