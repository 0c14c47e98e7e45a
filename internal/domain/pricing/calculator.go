// internal/domain/pricing/calculator.go
package pricing

import (
	"github.com/your-org/storefront/internal/config"
)

// LineItem is the minimal pricing input for one cart line
type LineItem struct {
	UnitPriceCents int64
	Quantity       int
}

// Breakdown represents the calculated totals, all in integer minor units.
// Display formatting rounds to two decimals only at presentation time.
type Breakdown struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TaxCents      int64 `json:"tax_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// Calculate computes subtotal, shipping, tax and total for the given items
// under one product-line policy. Shipping is waived once the subtotal reaches
// the free-shipping threshold; tax is subtotal times the policy rate, done in
// integer basis-point math so there is no cent-level float drift.
func Calculate(items []LineItem, policy config.PricingPolicy) Breakdown {
	var b Breakdown

	for _, item := range items {
		b.SubtotalCents += item.UnitPriceCents * int64(item.Quantity)
	}

	if policy.FlatShippingCents > 0 && b.SubtotalCents < policy.FreeShippingThresholdCents {
		b.ShippingCents = policy.FlatShippingCents
	}

	b.TaxCents = b.SubtotalCents * policy.TaxRateBasisPoints / 10000
	b.TotalCents = b.SubtotalCents + b.ShippingCents + b.TaxCents

	return b
}
