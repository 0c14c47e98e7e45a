// internal/domain/payment/wallet.go
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/storefront/internal/config"
)

// Wallet provider statuses
const (
	walletStatusCompleted = "COMPLETED"
	walletStatusCancelled = "CANCELLED"
)

// WalletService handles the redirect-wallet flow: create a provider-side
// order, capture after buyer approval, then re-verify the capture
// server-side before trusting it.
type WalletService struct {
	client *apiClient
}

// NewWalletService creates a new wallet payment service
func NewWalletService(cfg *config.Config) *WalletService {
	return &WalletService{
		client: newAPIClient(
			cfg.Payment.Wallet.BaseURL,
			cfg.Payment.Wallet.ClientID,
			cfg.Payment.Wallet.ClientSecret,
			cfg.Payment.Timeout,
		),
	}
}

// WalletOrderItem is one line of the provider-side order
type WalletOrderItem struct {
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_amount"`
	Quantity       int    `json:"quantity"`
}

// WalletOrderRequest scopes a provider order to the cart's items and total
type WalletOrderRequest struct {
	Items       []WalletOrderItem `json:"items"`
	AmountCents int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Reference   string            `json:"reference"` // order number, doubles as idempotency key
}

// WalletOrder represents the provider-side order awaiting buyer approval
type WalletOrder struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ApproveURL string `json:"approve_url"`
}

// walletCaptureResponse is the provider's capture result
type walletCaptureResponse struct {
	CaptureID   string `json:"capture_id"`
	Status      string `json:"status"`
	AmountCents int64  `json:"amount"`
	Currency    string `json:"currency"`
	PayerID     string `json:"payer_id"`
}

// walletVerifyResponse is the dedicated server-side verification result
type walletVerifyResponse struct {
	Verified    bool   `json:"verified"`
	AmountCents int64  `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
}

// CreateOrder creates the provider-side order object
func (s *WalletService) CreateOrder(ctx context.Context, req WalletOrderRequest) (*WalletOrder, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("payment amount must be positive")
	}

	var order WalletOrder
	if err := s.client.do(ctx, "POST", "/checkout/orders", req, &order); err != nil {
		return nil, fmt.Errorf("failed to create wallet order: %w", err)
	}
	return &order, nil
}

// Capture charges an approved provider order and then re-verifies the
// capture server-side. A client could report a capture that never happened;
// the dedicated verification call is what we actually trust. Buyer
// abandonment comes back as ErrCancelled, distinct from a hard failure.
func (s *WalletService) Capture(ctx context.Context, providerOrderID string) (*Details, error) {
	if providerOrderID == "" {
		return nil, fmt.Errorf("provider order ID required")
	}

	var capture walletCaptureResponse
	endpoint := fmt.Sprintf("/checkout/orders/%s/capture", providerOrderID)
	if err := s.client.do(ctx, "POST", endpoint, nil, &capture); err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 422 {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("failed to capture wallet order: %w", err)
	}

	switch capture.Status {
	case walletStatusCompleted:
	case walletStatusCancelled:
		return nil, ErrCancelled
	default:
		return nil, fmt.Errorf("%w: capture status %q", ErrDeclined, capture.Status)
	}

	verification, err := s.verify(ctx, providerOrderID, capture.CaptureID)
	if err != nil {
		return nil, err
	}
	if !verification.Verified || verification.AmountCents != capture.AmountCents {
		return nil, ErrVerificationFailed
	}

	return &Details{
		PaymentID:     providerOrderID,
		Method:        "wallet",
		Status:        capture.Status,
		AmountCents:   capture.AmountCents,
		Currency:      capture.Currency,
		TransactionID: providerOrderID,
		CaptureID:     capture.CaptureID,
		PayerID:       capture.PayerID,
	}, nil
}

// verify asks the provider whether the capture really happened
func (s *WalletService) verify(ctx context.Context, orderID, captureID string) (*walletVerifyResponse, error) {
	var resp walletVerifyResponse
	endpoint := fmt.Sprintf("/checkout/orders/%s/captures/%s/verify", orderID, captureID)
	if err := s.client.do(ctx, "GET", endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to verify capture: %w", err)
	}
	return &resp, nil
}
