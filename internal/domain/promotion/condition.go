package promotion

import (
	"github.com/shopspring/decimal"

	domcart "example.com/storefront-checkout/internal/domain/cart"
)

type Field string

const (
	FieldSubtotal  Field = "subtotal"
	FieldItemCount Field = "item_count"
	FieldCategory  Field = "category"
	FieldProduct   Field = "product"
)

type Op string

const (
	OpEq  Op = "eq"
	OpNe  Op = "ne"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

// Condition is one leaf of a rule predicate; a rule's conditions are ANDed.
// Numeric fields compare against Number, id fields match against IDs.
type Condition struct {
	Field  Field
	Op     Op
	Number decimal.Decimal
	IDs    []int64
}

// Eval checks the condition against a cart snapshot. Unknown field/operator
// combinations evaluate to false, so malformed rules never apply.
func (c Condition) Eval(snap domcart.Cart) bool {
	switch c.Field {
	case FieldSubtotal:
		return compareNumber(snap.Subtotal(), c.Op, c.Number)
	case FieldItemCount:
		return compareNumber(decimal.NewFromInt(snap.ItemCount()), c.Op, c.Number)
	case FieldCategory:
		return matchIDs(c.Op, c.IDs, func(l domcart.Line) int64 { return l.CategoryID }, snap)
	case FieldProduct:
		return matchIDs(c.Op, c.IDs, func(l domcart.Line) int64 { return l.ProductID }, snap)
	default:
		return false
	}
}

func compareNumber(actual decimal.Decimal, op Op, expected decimal.Decimal) bool {
	cmp := actual.Cmp(expected)
	switch op {
	case OpEq:
		return cmp == 0
	case OpNe:
		return cmp != 0
	case OpGt:
		return cmp > 0
	case OpGte:
		return cmp >= 0
	case OpLt:
		return cmp < 0
	case OpLte:
		return cmp <= 0
	default:
		return false
	}
}

func matchIDs(op Op, ids []int64, lineID func(domcart.Line) int64, snap domcart.Cart) bool {
	if op != OpEq && op != OpIn {
		return false
	}
	for _, l := range snap.Lines {
		for _, id := range ids {
			if lineID(l) == id {
				return true
			}
		}
	}
	return false
}
