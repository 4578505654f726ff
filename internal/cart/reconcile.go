// Package cart implements client-side cart reconciliation over the backend's
// full-replace protocol: every mutation rebuilds the complete desired item
// list from the freshly fetched cart and resends it, never a delta.
package cart

import "shopfront/internal/domain"

// Refs projects server cart lines onto the wire shape a replacement expects.
func Refs(items []domain.CartItem) []domain.CartItemRef {
	out := make([]domain.CartItemRef, 0, len(items))
	for _, it := range items {
		out = append(out, domain.CartItemRef{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}

// AddLine merges a product into the list: an existing line's quantity goes
// up by one, otherwise a new line with quantity 1 is appended. Adding the
// same product twice therefore yields one line with quantity 2, never two
// lines.
func AddLine(items []domain.CartItem, productID int) []domain.CartItemRef {
	refs := Refs(items)
	for i := range refs {
		if refs[i].ProductID == productID {
			refs[i].Quantity++
			return refs
		}
	}
	return append(refs, domain.CartItemRef{ProductID: productID, Quantity: 1})
}

// AdjustQty applies a +/- delta to one line, clamped to a floor of 1.
// Decrementing a quantity-1 line is a no-op, never a removal; lines leave
// the cart only through RemoveLine.
func AdjustQty(items []domain.CartItem, productID, delta int) []domain.CartItemRef {
	refs := Refs(items)
	for i := range refs {
		if refs[i].ProductID == productID {
			q := refs[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			refs[i].Quantity = q
		}
	}
	return refs
}

// RemoveLine filters the product out before resubmission.
func RemoveLine(items []domain.CartItem, productID int) []domain.CartItemRef {
	refs := make([]domain.CartItemRef, 0, len(items))
	for _, it := range items {
		if it.ProductID == productID {
			continue
		}
		refs = append(refs, domain.CartItemRef{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return refs
}
