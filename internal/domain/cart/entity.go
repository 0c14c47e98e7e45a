// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/storefront/internal/domain/catalog"
)

// Line represents one cart line item: a product snapshot and its quantity.
// Invariant: at most one line per distinct product id within a cart.
type Line struct {
	LineID   string           `json:"line_id"`
	Product  catalog.Snapshot `json:"product"`
	Quantity int              `json:"quantity"`
}

// LineTotalCents returns the effective price of the line
func (l Line) LineTotalCents() int64 {
	return l.Product.UnitPriceCents() * int64(l.Quantity)
}

// Cart is the ordered collection of lines owned by one session
type Cart struct {
	SessionID string    `json:"session_id"`
	Lines     []Line    `json:"lines"`
	Hydrated  bool      `json:"hydrated"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemCount returns the sum of quantities across all lines
func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// TotalCents returns the cart total, sale price taking precedence
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.LineTotalCents()
	}
	return total
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Line returns the product line for pricing-policy selection. A cart with any
// physical item ships physically; only an all-digital cart uses the digital
// policy.
func (c *Cart) Line() string {
	if len(c.Lines) == 0 {
		return catalog.LinePhysical
	}
	for _, l := range c.Lines {
		if l.Product.Line != catalog.LineDigital {
			return catalog.LinePhysical
		}
	}
	return catalog.LineDigital
}

// findLine returns the index of the line holding productID, or -1
func (c *Cart) findLine(productID uint) int {
	for i := range c.Lines {
		if c.Lines[i].Product.ProductID == productID {
			return i
		}
	}
	return -1
}
