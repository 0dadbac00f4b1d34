// Package pricing derives an order total from line items, an optional
// percentage discount, and a tip. All arithmetic is exact fixed-point
// decimal; binary floats never touch a monetary value.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/GioRdrz/food-delivery/internal/apperr"
)

// LineItem is one (unit price, quantity) pair of a cart.
type LineItem struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

var oneHundred = decimal.NewFromInt(100)

// Total computes subtotal = Σ unitPrice×quantity, subtracts the percentage
// discount if one is given, and adds the tip.
//
// Rounding rule: round half up to 2 decimal places, applied exactly once to
// the final total. Intermediate values keep full precision so rounding
// errors cannot compound.
func Total(items []LineItem, discountPercentage *decimal.Decimal, tip decimal.Decimal) (decimal.Decimal, error) {
	if tip.IsNegative() {
		return decimal.Zero, apperr.InvalidStatef("tip amount cannot be negative")
	}

	subtotal := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			return decimal.Zero, apperr.InvalidStatef("quantity must be positive")
		}
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	if discountPercentage != nil {
		pct := *discountPercentage
		if !pct.IsPositive() || pct.GreaterThan(oneHundred) {
			return decimal.Zero, apperr.InvalidStatef("discount percentage must be in (0, 100]")
		}
		discount := subtotal.Mul(pct.Div(oneHundred))
		subtotal = subtotal.Sub(discount)
	}

	// The (0,100] constraint already keeps the discounted subtotal at or
	// above zero; assert it anyway rather than trust the input alone.
	if subtotal.IsNegative() {
		return decimal.Zero, apperr.InvalidStatef("discounted subtotal cannot be negative")
	}

	return subtotal.Add(tip).Round(2), nil
}
