// Package pricing holds the cart pricing rules: line subtotals and the
// shipping threshold. Everything here is pure; persistence and session state
// live elsewhere.
package pricing

import "github.com/shopspring/decimal"

var (
	// FreeShippingThreshold is the subtotal at and above which the reduced
	// shipping rate applies. The boundary is inclusive.
	FreeShippingThreshold = decimal.NewFromFloat(20.00)

	standardShipping = decimal.NewFromFloat(6.00)
	reducedShipping  = decimal.NewFromFloat(3.00)
)

// LineSubtotal prices one cart line: unit price times quantity, at two
// decimal places. Quantity must be positive; non-positive lines are dropped
// by the resolver before they reach pricing.
func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// ShippingCost returns 0.00 for an empty cart, 3.00 once the subtotal
// reaches the threshold, and 6.00 below it.
func ShippingCost(subtotal decimal.Decimal, hasItems bool) decimal.Decimal {
	if !hasItems {
		return decimal.Zero.Round(2)
	}
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return reducedShipping
	}
	return standardShipping
}

// ProgressToThreshold reports how far a subtotal is from the reduced-shipping
// threshold: the remaining amount (never negative) and the percentage covered
// (capped at 100). Used for storefront messaging only.
func ProgressToThreshold(subtotal decimal.Decimal) (remaining decimal.Decimal, percent int) {
	remaining = FreeShippingThreshold.Sub(subtotal)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	remaining = remaining.Round(2)

	pct := subtotal.Div(FreeShippingThreshold).Mul(decimal.NewFromInt(100)).IntPart()
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return remaining, int(pct)
}
