package cart

import "github.com/shopspring/decimal"

// Line is one product the customer intends to buy. Display fields are
// snapshotted when the line is created and never re-fetched.
type Line struct {
	ProductID  string          `json:"productId"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	ImageRef   string          `json:"imageRef,omitempty"`
	Quantity   int             `json:"quantity"`
	StockLimit int             `json:"stockLimit"`
}

// Cart is the ordered line sequence for one client session. Insertion order
// is preserved for display; the total is always recomputed, never stored.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Empty reports whether the cart holds no lines.
func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Total returns Σ(unitPrice × quantity).
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Clone returns a cart whose line slice is independent of the receiver's.
func (c Cart) Clone() Cart {
	if len(c.Lines) == 0 {
		return Cart{}
	}
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

func (c Cart) indexOf(productID string) int {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
