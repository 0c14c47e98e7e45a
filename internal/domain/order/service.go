// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/payment"
	"github.com/your-org/storefront/internal/domain/pricing"
)

// Service is the order record sink: it persists a finalized order exactly
// once and clears the cart only after the insert succeeds.
type Service struct {
	repo  Repository
	carts *cart.Service
	log   *logrus.Logger
}

// NewService creates a new order service
func NewService(repo Repository, carts *cart.Service, log *logrus.Logger) *Service {
	return &Service{
		repo:  repo,
		carts: carts,
		log:   log,
	}
}

// CreateInput carries everything needed to build the immutable order record
type CreateInput struct {
	SessionID   string
	OrderNumber string
	Customer    checkout.CustomerInfo
	Addresses   checkout.AddressInfo
	Notes       string
	Lines       []cart.Line
	Pricing     pricing.Breakdown
	Currency    string
	Payment     payment.Details
}

// WriteError marks an order insert that failed after funds were already
// captured. It is a contact-support class error: naive retry could
// double-charge, so the caller must surface the order number and provider
// transaction id for reconciliation instead of a generic retry prompt.
type WriteError struct {
	OrderNumber   string
	TransactionID string
	Err           error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("order %s could not be recorded after payment capture (transaction %s): %v",
		e.OrderNumber, e.TransactionID, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Create builds and persists the order snapshot, then clears the cart.
// Re-running with the same order number returns the already-written order,
// so a retry after a transient failure cannot record the sale twice.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Order, error) {
	if in.OrderNumber == "" {
		return nil, fmt.Errorf("order number required")
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("cannot create an order with no items")
	}

	if existing, err := s.repo.GetByNumber(ctx, in.OrderNumber); err == nil {
		s.log.WithField("order_number", in.OrderNumber).Info("order already recorded, returning existing")
		return existing, nil
	}

	o := s.build(in)

	if err := s.repo.Create(ctx, o); err != nil {
		// Funds are captured at this point; the cart and draft stay intact
		// so the user can retry without re-entering anything.
		return nil, &WriteError{
			OrderNumber:   in.OrderNumber,
			TransactionID: in.Payment.TransactionID,
			Err:           err,
		}
	}

	// Clear exactly once, only after the insert succeeded. A failed clear is
	// logged, not surfaced: the order exists, and the stale mirror heals on
	// the next cart write.
	if err := s.carts.Clear(ctx, in.SessionID); err != nil {
		s.log.WithError(err).WithField("order_number", in.OrderNumber).Warn("failed to clear cart after order creation")
	}

	return o, nil
}

// GetByNumber retrieves an order for the confirmation page
func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	return s.repo.GetByNumber(ctx, orderNumber)
}

// build assembles the immutable snapshot from checkout state
func (s *Service) build(in CreateInput) *Order {
	o := &Order{
		OrderNumber:     in.OrderNumber,
		Email:           in.Customer.Email,
		Name:            in.Customer.Name,
		Phone:           in.Customer.Phone,
		Status:          OrderStatusPaid,
		PaymentStatus:   PaymentStatusCaptured,
		SubtotalCents:   in.Pricing.SubtotalCents,
		ShippingCents:   in.Pricing.ShippingCents,
		TaxCents:        in.Pricing.TaxCents,
		TotalCents:      in.Pricing.TotalCents,
		Currency:        in.Currency,
		ShippingAddress: toAddress(in.Addresses.Shipping),
		BillingAddress:  toAddress(in.Addresses.EffectiveBilling()),
		PaymentMethod:   in.Payment.Method,
		PaymentID:       in.Payment.PaymentID,
		TransactionID:   in.Payment.TransactionID,
		CaptureID:       in.Payment.CaptureID,
		PayerID:         in.Payment.PayerID,
		Notes:           in.Notes,
	}

	for _, line := range in.Lines {
		o.Items = append(o.Items, OrderItem{
			ProductID:      line.Product.ProductID,
			Name:           line.Product.Name,
			UnitPriceCents: line.Product.UnitPriceCents(),
			Quantity:       line.Quantity,
			LineTotalCents: line.LineTotalCents(),
		})
	}

	return o
}

func toAddress(a checkout.Address) Address {
	return Address{
		Street: a.Street,
		City:   a.City,
		State:  a.State,
		Zip:    a.Zip,
	}
}
