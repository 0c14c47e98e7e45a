package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
)

func newWalletService(baseURL string) *WalletService {
	cfg := &config.Config{}
	cfg.Payment.Wallet.BaseURL = baseURL
	cfg.Payment.Wallet.ClientID = "client-id"
	cfg.Payment.Wallet.ClientSecret = "client-secret"
	cfg.Payment.Timeout = 5 * time.Second
	return NewWalletService(cfg)
}

// walletStub wires the create/capture/verify endpoints with configurable
// responses.
type walletStub struct {
	captureStatus  string
	captureHTTP    int
	verified       bool
	verifiedAmount int64
}

func (s *walletStub) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		var req WalletOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(WalletOrder{
			ID:         "W-1",
			Status:     "CREATED",
			ApproveURL: "https://wallet.example/approve/W-1",
		})
	})
	mux.HandleFunc("POST /checkout/orders/W-1/capture", func(w http.ResponseWriter, r *http.Request) {
		if s.captureHTTP != 0 {
			http.Error(w, `{"error":"order cannot be captured"}`, s.captureHTTP)
			return
		}
		json.NewEncoder(w).Encode(walletCaptureResponse{
			CaptureID:   "C-1",
			Status:      s.captureStatus,
			AmountCents: 6183,
			Currency:    "usd",
			PayerID:     "payer-7",
		})
	})
	mux.HandleFunc("GET /checkout/orders/W-1/captures/C-1/verify", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(walletVerifyResponse{
			Verified:    s.verified,
			AmountCents: s.verifiedAmount,
			Currency:    "usd",
			Status:      s.captureStatus,
		})
	})
	return mux
}

func TestCreateOrder(t *testing.T) {
	stub := &walletStub{}
	server := httptest.NewServer(stub.handler(t))
	defer server.Close()

	svc := newWalletService(server.URL)
	order, err := svc.CreateOrder(context.Background(), WalletOrderRequest{
		Items:       []WalletOrderItem{{Name: "Sneaker", UnitPriceCents: 2400, Quantity: 2}},
		AmountCents: 6183,
		Currency:    "usd",
		Reference:   "ORD-20260829-ABCD1234",
	})
	require.NoError(t, err)

	assert.Equal(t, "W-1", order.ID)
	assert.NotEmpty(t, order.ApproveURL)
}

func TestCaptureCompletedAndVerified(t *testing.T) {
	stub := &walletStub{captureStatus: "COMPLETED", verified: true, verifiedAmount: 6183}
	server := httptest.NewServer(stub.handler(t))
	defer server.Close()

	svc := newWalletService(server.URL)
	details, err := svc.Capture(context.Background(), "W-1")
	require.NoError(t, err)

	assert.Equal(t, "wallet", details.Method)
	assert.Equal(t, "W-1", details.PaymentID)
	assert.Equal(t, "C-1", details.CaptureID)
	assert.Equal(t, "payer-7", details.PayerID)
	assert.Equal(t, int64(6183), details.AmountCents)
}

func TestCaptureCancelledByBuyer(t *testing.T) {
	stub := &walletStub{captureStatus: "CANCELLED"}
	server := httptest.NewServer(stub.handler(t))
	defer server.Close()

	svc := newWalletService(server.URL)
	_, err := svc.Capture(context.Background(), "W-1")
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestCaptureUnprocessableIsCancelled(t *testing.T) {
	stub := &walletStub{captureHTTP: http.StatusUnprocessableEntity}
	server := httptest.NewServer(stub.handler(t))
	defer server.Close()

	svc := newWalletService(server.URL)
	_, err := svc.Capture(context.Background(), "W-1")
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestCaptureDeclined(t *testing.T) {
	stub := &walletStub{captureStatus: "DECLINED"}
	server := httptest.NewServer(stub.handler(t))
	defer server.Close()

	svc := newWalletService(server.URL)
	_, err := svc.Capture(context.Background(), "W-1")
	assert.ErrorIs(t, err, ErrDeclined)
}

func TestCaptureFailsVerification(t *testing.T) {
	stub := &walletStub{captureStatus: "COMPLETED", verified: false}
	server := httptest.NewServer(stub.handler(t))
	defer server.Close()

	svc := newWalletService(server.URL)
	_, err := svc.Capture(context.Background(), "W-1")
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestCaptureVerifiedAmountMismatch(t *testing.T) {
	stub := &walletStub{captureStatus: "COMPLETED", verified: true, verifiedAmount: 100}
	server := httptest.NewServer(stub.handler(t))
	defer server.Close()

	svc := newWalletService(server.URL)
	_, err := svc.Capture(context.Background(), "W-1")
	assert.ErrorIs(t, err, ErrVerificationFailed)
}
