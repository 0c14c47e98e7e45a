// internal/domain/order/entity.go
package order

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the order status. This core only ever writes
// "paid"; later transitions belong to the backoffice.
type OrderStatus string

const (
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusCaptured PaymentStatus = "captured"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Order represents the immutable order record written once per successful
// checkout. Addresses and line items are snapshots; catalog changes after
// the fact never touch an order.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null;size:50" json:"order_number"`

	// Customer contact
	Email string `gorm:"not null;size:255" json:"email"`
	Name  string `gorm:"not null;size:255" json:"name"`
	Phone string `gorm:"size:50" json:"phone"`

	Status        OrderStatus   `gorm:"not null;default:'paid'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"not null" json:"payment_status"`

	// Financial information, in cents
	SubtotalCents int64  `gorm:"not null" json:"subtotal_cents"`
	ShippingCents int64  `gorm:"default:0" json:"shipping_cents"`
	TaxCents      int64  `gorm:"default:0" json:"tax_cents"`
	TotalCents    int64  `gorm:"not null" json:"total_cents"`
	Currency      string `gorm:"size:3;default:'USD'" json:"currency"`

	// Address snapshots
	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	BillingAddress  Address `gorm:"embedded;embeddedPrefix:billing_" json:"billing_address"`

	// Payment provider metadata
	PaymentMethod string `gorm:"not null;size:20" json:"payment_method"`
	PaymentID     string `gorm:"size:255" json:"payment_id"`
	TransactionID string `gorm:"size:255" json:"transaction_id"`
	CaptureID     string `gorm:"size:255" json:"capture_id"`
	PayerID       string `gorm:"size:255" json:"payer_id"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem represents one line of an order
type OrderItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrderID        uint      `gorm:"not null;index" json:"order_id"`
	ProductID      uint      `gorm:"not null;index" json:"product_id"`
	Name           string    `gorm:"not null;size:255" json:"name"`
	UnitPriceCents int64     `gorm:"not null" json:"unit_price_cents"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	LineTotalCents int64     `gorm:"not null" json:"line_total_cents"`
	CreatedAt      time.Time `json:"created_at"`
}

// Address represents a shipping/billing address snapshot embedded in Order
type Address struct {
	Street string `gorm:"size:255" json:"street"`
	City   string `gorm:"size:100" json:"city"`
	State  string `gorm:"size:100" json:"state"`
	Zip    string `gorm:"size:20" json:"zip"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// GetFormattedTotal returns the total as a display float. Only presentation
// code should use this; all arithmetic stays in cents.
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.TotalCents) / 100
}
