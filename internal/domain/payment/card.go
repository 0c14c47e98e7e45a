// internal/domain/payment/card.go
package payment

import (
	"context"
	"fmt"

	"github.com/your-org/storefront/internal/config"
)

// Card intent statuses as reported by the processor. Only a terminal
// "succeeded" proceeds to order creation.
const (
	cardStatusSucceeded = "succeeded"
)

// CardService handles the card-present intent/confirm flow
type CardService struct {
	client *apiClient
}

// NewCardService creates a new card payment service
func NewCardService(cfg *config.Config) *CardService {
	return &CardService{
		client: newAPIClient(
			cfg.Payment.Card.BaseURL,
			cfg.Payment.Card.SecretKey,
			"",
			cfg.Payment.Timeout,
		),
	}
}

// CardIntentRequest represents a payment authorization request. The order
// number rides along as the idempotency key so a retried request cannot
// authorize twice.
type CardIntentRequest struct {
	AmountCents    int64  `json:"amount"`
	Currency       string `json:"currency"`
	IdempotencyKey string `json:"idempotency_key"`
	ReceiptEmail   string `json:"receipt_email,omitempty"`
}

// CardIntent represents the processor-side authorization handle
type CardIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	AmountCents  int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// cardConfirmResponse is the processor's confirm result
type cardConfirmResponse struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	AmountCents int64  `json:"amount"`
	Currency    string `json:"currency"`
	ChargeID    string `json:"charge_id"`
}

// CreateIntent requests a payment authorization handle from the processor
func (s *CardService) CreateIntent(ctx context.Context, req CardIntentRequest) (*CardIntent, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("payment amount must be positive")
	}

	var intent CardIntent
	if err := s.client.do(ctx, "POST", "/payment_intents", req, &intent); err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return &intent, nil
}

// Confirm finalizes an intent. Any status other than a terminal "succeeded"
// is treated as a failure; the caller never builds an order from it.
func (s *CardService) Confirm(ctx context.Context, intentID string) (*Details, error) {
	if intentID == "" {
		return nil, fmt.Errorf("intent ID required")
	}

	var resp cardConfirmResponse
	endpoint := fmt.Sprintf("/payment_intents/%s/confirm", intentID)
	if err := s.client.do(ctx, "POST", endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to confirm payment intent: %w", err)
	}

	if resp.Status != cardStatusSucceeded {
		return nil, fmt.Errorf("%w: intent status %q", ErrDeclined, resp.Status)
	}

	return &Details{
		PaymentID:     resp.ID,
		Method:        "card",
		Status:        resp.Status,
		AmountCents:   resp.AmountCents,
		Currency:      resp.Currency,
		TransactionID: resp.ChargeID,
	}, nil
}
