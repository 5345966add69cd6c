package promotion

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domcart "example.com/storefront-checkout/internal/domain/cart"
)

func testCart() domcart.Cart {
	return domcart.Cart{
		Lines: []domcart.Line{
			{ProductID: 1, CategoryID: 10, UnitPrice: decimal.NewFromInt(30), Quantity: 2},
			{ProductID: 2, CategoryID: 20, UnitPrice: decimal.NewFromInt(15), Quantity: 1},
		},
	}
}

func TestConditionEval_Subtotal(t *testing.T) {
	// cart subtotal is 75
	tests := []struct {
		name string
		op   Op
		want bool
	}{
		{name: "gte passes at threshold", op: OpGte, want: true},
		{name: "gt fails at threshold", op: OpGt, want: false},
		{name: "eq passes", op: OpEq, want: true},
		{name: "lt fails", op: OpLt, want: false},
		{name: "lte passes", op: OpLte, want: true},
		{name: "ne fails", op: OpNe, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := Condition{Field: FieldSubtotal, Op: tt.op, Number: decimal.NewFromInt(75)}
			require.Equal(t, tt.want, cond.Eval(testCart()))
		})
	}
}

func TestConditionEval_ItemCount(t *testing.T) {
	cond := Condition{Field: FieldItemCount, Op: OpGte, Number: decimal.NewFromInt(3)}
	require.True(t, cond.Eval(testCart()))

	cond.Number = decimal.NewFromInt(4)
	require.False(t, cond.Eval(testCart()))
}

func TestConditionEval_CategoryAndProduct(t *testing.T) {
	inCategory := Condition{Field: FieldCategory, Op: OpIn, IDs: []int64{10, 99}}
	require.True(t, inCategory.Eval(testCart()))

	missingCategory := Condition{Field: FieldCategory, Op: OpIn, IDs: []int64{99}}
	require.False(t, missingCategory.Eval(testCart()))

	eqProduct := Condition{Field: FieldProduct, Op: OpEq, IDs: []int64{2}}
	require.True(t, eqProduct.Eval(testCart()))
}

func TestConditionEval_FailsClosed(t *testing.T) {
	// unknown fields and unsupported op combinations never apply
	unknownField := Condition{Field: "weather", Op: OpEq, Number: decimal.NewFromInt(1)}
	require.False(t, unknownField.Eval(testCart()))

	badOp := Condition{Field: FieldProduct, Op: OpGt, IDs: []int64{1}}
	require.False(t, badOp.Eval(testCart()))
}

func TestScope_Specificity(t *testing.T) {
	products := Scope{Kind: ScopeProducts, ProductIDs: []int64{1}}
	categories := Scope{Kind: ScopeCategories, CategoryIDs: []int64{10}}
	all := Scope{Kind: ScopeAll}

	require.Greater(t, products.Specificity(), categories.Specificity())
	require.Greater(t, categories.Specificity(), all.Specificity())
}

func TestRule_DiscountCappedAtMatchedSubtotal(t *testing.T) {
	rule := Rule{DiscountType: DiscountFixed, DiscountValue: decimal.NewFromInt(100)}
	got := rule.Discount(decimal.NewFromInt(60))
	require.True(t, got.Equal(decimal.NewFromInt(60)))

	pct := Rule{DiscountType: DiscountPercentage, DiscountValue: decimal.NewFromInt(20)}
	got = pct.Discount(decimal.NewFromInt(60))
	require.True(t, got.Equal(decimal.NewFromInt(12)))
}

func TestRule_UnknownDiscountTypeYieldsZero(t *testing.T) {
	rule := Rule{DiscountType: "bogo", DiscountValue: decimal.NewFromInt(50)}
	got := rule.Discount(decimal.NewFromInt(100))
	require.True(t, got.IsZero(), "got %s", got)
}
