// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Product lines. The line decides which pricing policy applies at checkout.
const (
	LinePhysical = "physical"
	LineDigital  = "digital"
)

// Product represents the catalog product entity. The checkout core treats the
// catalog as read-only; only the admin/backoffice mutates these rows.
type Product struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"not null;size:255" json:"name"`
	Brand          string         `gorm:"size:100;index" json:"brand"`
	Category       string         `gorm:"size:100;index" json:"category"`
	PriceCents     int64          `gorm:"not null" json:"price_cents"`
	SalePriceCents *int64         `json:"sale_price_cents,omitempty"`
	Image          string         `gorm:"size:500" json:"image"`
	Stock          int            `gorm:"default:0" json:"stock"`
	IsDigital      bool           `gorm:"default:false" json:"is_digital"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// Line returns the product line for pricing-policy selection
func (p *Product) Line() string {
	if p.IsDigital {
		return LineDigital
	}
	return LinePhysical
}

// Snapshot is the copied-at-add-time subset of product fields stored in carts
// and wishlists. It never re-fetches live price or stock.
type Snapshot struct {
	ProductID      uint   `json:"product_id"`
	Name           string `json:"name"`
	Brand          string `json:"brand"`
	Category       string `json:"category"`
	Image          string `json:"image"`
	PriceCents     int64  `json:"price_cents"`
	SalePriceCents *int64 `json:"sale_price_cents,omitempty"`
	Line           string `json:"line"`
}

// Snapshot produces the normalized snapshot for cart/wishlist storage
func (p *Product) Snapshot() Snapshot {
	var sale *int64
	if p.SalePriceCents != nil && *p.SalePriceCents > 0 {
		v := *p.SalePriceCents
		sale = &v
	}
	return Snapshot{
		ProductID:      p.ID,
		Name:           p.Name,
		Brand:          p.Brand,
		Category:       p.Category,
		Image:          p.Image,
		PriceCents:     p.PriceCents,
		SalePriceCents: sale,
		Line:           p.Line(),
	}
}

// UnitPriceCents returns the effective unit price. Sale price always takes
// precedence over list price when present.
func (s Snapshot) UnitPriceCents() int64 {
	if s.SalePriceCents != nil && *s.SalePriceCents > 0 {
		return *s.SalePriceCents
	}
	return s.PriceCents
}
