// internal/domain/payment/details.go
package payment

import "errors"

var (
	// ErrCancelled marks a buyer-abandoned wallet approval. Callers return
	// the user to the payment step without an error toast.
	ErrCancelled = errors.New("payment: cancelled by buyer")
	// ErrVerificationFailed marks a capture the provider would not confirm
	// server-side. Order creation must not proceed.
	ErrVerificationFailed = errors.New("payment: capture verification failed")
	// ErrDeclined marks a terminal non-success from the processor
	ErrDeclined = errors.New("payment: not approved by processor")
)

// Details is the normalized record both adapters produce on success. It is
// the only payment shape the order sink ever sees.
type Details struct {
	PaymentID     string `json:"payment_id"`
	Method        string `json:"method"` // card or wallet
	Status        string `json:"status"`
	AmountCents   int64  `json:"amount_cents"`
	Currency      string `json:"currency"`
	TransactionID string `json:"transaction_id"`
	CaptureID     string `json:"capture_id,omitempty"`
	PayerID       string `json:"payer_id,omitempty"`
}
