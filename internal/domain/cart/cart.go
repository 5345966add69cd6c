package cart

import "github.com/shopspring/decimal"

// Line captures a cart entry at quote time. Price and category are snapshotted
// on the line so pricing decisions do not race with catalog updates.
type Line struct {
	ProductID  int64
	CategoryID int64
	UnitPrice  decimal.Decimal
	Quantity   int64
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

type Cart struct {
	UserID int64
	Lines  []Line
}

func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c Cart) ItemCount() int64 {
	var count int64
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}
