package promotion

import (
	"time"

	"github.com/shopspring/decimal"

	domcart "example.com/storefront-checkout/internal/domain/cart"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type ScopeKind string

const (
	ScopeAll        ScopeKind = "all"
	ScopeCategories ScopeKind = "categories"
	ScopeProducts   ScopeKind = "products"
)

// Scope limits which cart lines a rule applies to.
type Scope struct {
	Kind        ScopeKind
	CategoryIDs []int64
	ProductIDs  []int64
}

func (s Scope) Matches(l domcart.Line) bool {
	switch s.Kind {
	case ScopeAll:
		return true
	case ScopeCategories:
		for _, id := range s.CategoryIDs {
			if l.CategoryID == id {
				return true
			}
		}
	case ScopeProducts:
		for _, id := range s.ProductIDs {
			if l.ProductID == id {
				return true
			}
		}
	}
	return false
}

func (s Scope) MatchesAny(c domcart.Cart) bool {
	for _, l := range c.Lines {
		if s.Matches(l) {
			return true
		}
	}
	return false
}

// Specificity orders scopes for tie-breaking: a product list is narrower than
// a category list, which is narrower than "all".
func (s Scope) Specificity() int {
	switch s.Kind {
	case ScopeProducts:
		return 2
	case ScopeCategories:
		return 1
	default:
		return 0
	}
}

type Rule struct {
	ID            int64
	RuleType      string
	Conditions    []Condition
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	AppliesTo     Scope
	Priority      int
	IsActive      bool
	StartsAt      *time.Time
	EndsAt        *time.Time
}

// InWindow treats nil bounds as open-ended.
func (r *Rule) InWindow(now time.Time) bool {
	if r.StartsAt != nil && now.Before(*r.StartsAt) {
		return false
	}
	if r.EndsAt != nil && now.After(*r.EndsAt) {
		return false
	}
	return true
}

func (r *Rule) ConditionsMet(c domcart.Cart) bool {
	for _, cond := range r.Conditions {
		if !cond.Eval(c) {
			return false
		}
	}
	return true
}

// MatchedSubtotal sums the lines inside the rule's scope.
func (r *Rule) MatchedSubtotal(c domcart.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		if r.AppliesTo.Matches(l) {
			total = total.Add(l.Subtotal())
		}
	}
	return total
}

// Discount computes the rule's discount over the matched-line subtotal,
// capped so it never exceeds that subtotal. An unrecognized discount type
// yields zero, matching the condition evaluator's posture.
func (r *Rule) Discount(matchedSubtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch r.DiscountType {
	case DiscountPercentage:
		discount = matchedSubtotal.Mul(r.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
	case DiscountFixed:
		discount = r.DiscountValue
	default:
		return decimal.Zero
	}
	if discount.GreaterThan(matchedSubtotal) {
		return matchedSubtotal
	}
	return discount
}
