package promotion

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domcart "example.com/storefront-checkout/internal/domain/cart"
	dompromo "example.com/storefront-checkout/internal/domain/promotion"
)

type Repository interface {
	ListActive(ctx context.Context) ([]*dompromo.Rule, error)
}

// Applied pairs the selected rule with the discount it yields for the cart.
type Applied struct {
	Rule     *dompromo.Rule
	Discount decimal.Decimal
}

type Service struct {
	rules Repository
	now   func() time.Time
}

func NewService(rules Repository) *Service {
	return &Service{rules: rules, now: time.Now}
}

// SelectApplicableRule picks the single rule to apply, or nil when none
// matches. Selection is read-only and deterministic: highest priority wins,
// ties prefer the narrower scope, remaining ties go to the lowest rule ID.
func (s *Service) SelectApplicableRule(ctx context.Context, c domcart.Cart) (*Applied, error) {
	rules, err := s.rules.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var best *dompromo.Rule
	for _, r := range rules {
		if !r.IsActive || !r.InWindow(now) {
			continue
		}
		if !r.AppliesTo.MatchesAny(c) {
			continue
		}
		if !r.ConditionsMet(c) {
			continue
		}
		if best == nil || betterThan(r, best) {
			best = r
		}
	}
	if best == nil {
		return nil, nil
	}

	return &Applied{
		Rule:     best,
		Discount: best.Discount(best.MatchedSubtotal(c)),
	}, nil
}

func betterThan(a, b *dompromo.Rule) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if sa, sb := a.AppliesTo.Specificity(), b.AppliesTo.Specificity(); sa != sb {
		return sa > sb
	}
	return a.ID < b.ID
}
