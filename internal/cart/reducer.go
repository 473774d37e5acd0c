package cart

import "github.com/shopspring/decimal"

// Product carries the catalog fields snapshotted onto a new line. Stock is
// nil when the catalog did not report availability.
type Product struct {
	ID        string
	Name      string
	UnitPrice decimal.Decimal
	ImageRef  string
	Stock     *int
}

// LimitNotice is the side-channel surfaced when a quantity change runs into
// the line's stock limit. It never affects the returned cart.
type LimitNotice struct {
	ProductID  string
	StockLimit int
}

// Add returns the cart with the product added: an existing line gains one
// unit (silently capped at its stock limit), a new line starts at quantity 1.
// defaultStockLimit bounds lines whose product reported no stock.
func Add(c Cart, product Product, defaultStockLimit int) Cart {
	next := c.Clone()
	if i := next.indexOf(product.ID); i >= 0 {
		if next.Lines[i].Quantity < next.Lines[i].StockLimit {
			next.Lines[i].Quantity++
		}
		return next
	}

	// Non-positive stock is treated as unreported, matching the upstream
	// catalog's habit of omitting the field.
	limit := defaultStockLimit
	if product.Stock != nil && *product.Stock > 0 {
		limit = *product.Stock
	}
	next.Lines = append(next.Lines, Line{
		ProductID:  product.ID,
		Name:       product.Name,
		UnitPrice:  product.UnitPrice,
		ImageRef:   product.ImageRef,
		Quantity:   1,
		StockLimit: limit,
	})
	return next
}

// ChangeQuantity returns the cart with the line's quantity moved by delta,
// clamped to [1, stockLimit]. Exceeding the limit additionally returns a
// LimitNotice. A missing product is a no-op, not an error.
func ChangeQuantity(c Cart, productID string, delta int) (Cart, *LimitNotice) {
	i := c.indexOf(productID)
	if i < 0 {
		return c.Clone(), nil
	}

	next := c.Clone()
	line := &next.Lines[i]
	requested := line.Quantity + delta
	switch {
	case requested < 1:
		line.Quantity = 1
	case requested > line.StockLimit:
		line.Quantity = line.StockLimit
		return next, &LimitNotice{ProductID: productID, StockLimit: line.StockLimit}
	default:
		line.Quantity = requested
	}
	return next, nil
}

// Remove returns the cart without the line; removing a missing product is a
// no-op.
func Remove(c Cart, productID string) Cart {
	i := c.indexOf(productID)
	if i < 0 {
		return c.Clone()
	}
	next := Cart{Lines: make([]Line, 0, len(c.Lines)-1)}
	next.Lines = append(next.Lines, c.Lines[:i]...)
	next.Lines = append(next.Lines, c.Lines[i+1:]...)
	return next
}

// Clear returns the empty cart.
func Clear() Cart {
	return Cart{}
}
