package cart

import (
	"github.com/shopspring/decimal"

	"shopfront/internal/domain"
)

// taxRate backs the advisory preview only; the backend never sees it.
var taxRate = decimal.NewFromFloat(0.08)

// Estimate is the cart page's tax/total preview. Display only: the
// authoritative totals always come from server responses, this exists so
// the visitor sees a rough final figure before checkout.
type Estimate struct {
	Subtotal string
	Tax      string
	Total    string
}

func Preview(c *domain.Cart) Estimate {
	if c == nil {
		zero := decimal.Zero.StringFixed(2)
		return Estimate{Subtotal: zero, Tax: zero, Total: zero}
	}
	subtotal := decimal.NewFromFloat(c.TotalAmount)
	tax := subtotal.Mul(taxRate).Round(2)
	return Estimate{
		Subtotal: subtotal.StringFixed(2),
		Tax:      tax.StringFixed(2),
		Total:    subtotal.Add(tax).StringFixed(2),
	}
}
