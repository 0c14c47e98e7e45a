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

func newCardService(baseURL string) *CardService {
	cfg := &config.Config{}
	cfg.Payment.Card.BaseURL = baseURL
	cfg.Payment.Card.SecretKey = "sk_test_123"
	cfg.Payment.Timeout = 5 * time.Second
	return NewCardService(cfg)
}

func TestCreateIntent(t *testing.T) {
	var gotReq CardIntentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/payment_intents", r.URL.Path)

		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sk_test_123", user)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(CardIntent{
			ID:           "pi_1",
			ClientSecret: "pi_1_secret",
			Status:       "requires_confirmation",
			AmountCents:  6183,
			Currency:     "usd",
		})
	}))
	defer server.Close()

	svc := newCardService(server.URL)
	intent, err := svc.CreateIntent(context.Background(), CardIntentRequest{
		AmountCents:    6183,
		Currency:       "usd",
		IdempotencyKey: "ORD-20260829-ABCD1234",
		ReceiptEmail:   "jane@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, "pi_1_secret", intent.ClientSecret)
	assert.Equal(t, "ORD-20260829-ABCD1234", gotReq.IdempotencyKey)
}

func TestCreateIntentRejectsNonPositiveAmount(t *testing.T) {
	svc := newCardService("http://unused")

	_, err := svc.CreateIntent(context.Background(), CardIntentRequest{AmountCents: 0, Currency: "usd"})
	assert.Error(t, err)
}

func TestConfirmSucceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment_intents/pi_1/confirm", r.URL.Path)
		json.NewEncoder(w).Encode(cardConfirmResponse{
			ID:          "pi_1",
			Status:      "succeeded",
			AmountCents: 6183,
			Currency:    "usd",
			ChargeID:    "ch_9",
		})
	}))
	defer server.Close()

	svc := newCardService(server.URL)
	details, err := svc.Confirm(context.Background(), "pi_1")
	require.NoError(t, err)

	assert.Equal(t, "card", details.Method)
	assert.Equal(t, "pi_1", details.PaymentID)
	assert.Equal(t, "ch_9", details.TransactionID)
	assert.Equal(t, int64(6183), details.AmountCents)
}

func TestConfirmNonSucceededIsDeclined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(cardConfirmResponse{ID: "pi_1", Status: "requires_payment_method"})
	}))
	defer server.Close()

	svc := newCardService(server.URL)
	_, err := svc.Confirm(context.Background(), "pi_1")
	assert.ErrorIs(t, err, ErrDeclined)
}

func TestConfirmProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"intent not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	svc := newCardService(server.URL)
	_, err := svc.Confirm(context.Background(), "pi_missing")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDeclined)
}
