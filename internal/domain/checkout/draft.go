// internal/domain/checkout/draft.go
package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Step identifies a checkout wizard step
type Step int

const (
	StepCustomerInfo    Step = 1
	StepShippingBilling Step = 2
	StepPayment         Step = 3
	// StepSubmitted is terminal and reachable only through a confirmed
	// payment capture followed by a successful order write.
	StepSubmitted Step = 4
)

// String returns the step name
func (s Step) String() string {
	switch s {
	case StepCustomerInfo:
		return "customer_info"
	case StepShippingBilling:
		return "shipping_billing"
	case StepPayment:
		return "payment"
	case StepSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Method identifies the selected payment method
type Method string

const (
	MethodCard   Method = "card"
	MethodWallet Method = "wallet"
)

// CustomerInfo holds the step 1 fields
type CustomerInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Address holds one postal address
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// AddressInfo holds the step 2 fields. When SameAsShipping is set the
// billing fields are not required and the shipping address is used for both.
type AddressInfo struct {
	Shipping       Address `json:"shipping"`
	Billing        Address `json:"billing"`
	SameAsShipping bool    `json:"same_as_shipping"`
}

// EffectiveBilling returns the billing address honoring SameAsShipping
func (a AddressInfo) EffectiveBilling() Address {
	if a.SameAsShipping {
		return a.Shipping
	}
	return a.Billing
}

// Draft is the transient checkout state for one session. It is created fresh
// on entering checkout and discarded on successful submission or abandon; it
// is deliberately not mirrored to the KV store.
type Draft struct {
	SessionID string       `json:"session_id"`
	Step      Step         `json:"step"`
	Customer  CustomerInfo `json:"customer"`
	Addresses AddressInfo  `json:"addresses"`
	Method    Method       `json:"method"`
	Notes     string       `json:"notes"`

	// OrderNumber is generated once when payment first starts and reused on
	// retries, so it doubles as the idempotency key sent to the provider.
	OrderNumber string `json:"order_number,omitempty"`

	paymentInFlight bool
	CreatedAt       time.Time `json:"created_at"`
}

// newOrderNumber generates a globally unique, human-scannable order number
func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
