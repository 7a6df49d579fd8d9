package cart

import "github.com/electronicsstore/storefront/internal/catalog"

// Line pairs a product with a positive quantity.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal is the line's price times quantity. Quantity is unbounded here;
// HTTP input is capped at validators.MaxCartQuantity per update and repeated
// adds are throttled by the cart rate limit, which keeps products of seed
// prices far below int64 range.
func (l Line) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// State is an insertion-ordered cart with at most one line per product id.
type State []Line

// Totals are always derived from State, never stored.
type Totals struct {
	TotalItems int   `json:"total_items"`
	TotalPrice int64 `json:"total_price"`
}

// AddToCart increments the product's line in place or appends a new line
// with quantity 1.
func AddToCart(state State, product catalog.Product) State {
	next := state.clone()
	if idx := next.indexOf(product.ID); idx >= 0 {
		next[idx].Quantity++
		return next
	}
	return append(next, Line{Product: product, Quantity: 1})
}

// RemoveFromCart drops the line for productID. A missing id leaves the
// content unchanged.
func RemoveFromCart(state State, productID int64) State {
	next := make(State, 0, len(state))
	for _, line := range state {
		if line.Product.ID == productID {
			continue
		}
		next = append(next, line)
	}
	return next
}

// UpdateQuantity sets the line's quantity in place. Non-positive quantities
// remove the line; a missing id is a no-op and never inserts.
func UpdateQuantity(state State, productID int64, quantity int) State {
	if quantity <= 0 {
		return RemoveFromCart(state, productID)
	}
	next := state.clone()
	if idx := next.indexOf(productID); idx >= 0 {
		next[idx].Quantity = quantity
	}
	return next
}

// ComputeTotals sums quantities and line subtotals.
func ComputeTotals(state State) Totals {
	var totals Totals
	for _, line := range state {
		totals.TotalItems += line.Quantity
		totals.TotalPrice += line.Subtotal()
	}
	return totals
}

// Quantity returns the quantity held for productID, or 0.
func (s State) Quantity(productID int64) int {
	if idx := s.indexOf(productID); idx >= 0 {
		return s[idx].Quantity
	}
	return 0
}

func (s State) indexOf(productID int64) int {
	for i, line := range s {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s State) clone() State {
	out := make(State, len(s), len(s)+1)
	copy(out, s)
	return out
}
