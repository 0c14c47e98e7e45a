package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/payment"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/infrastructure/kv"
)

// mockRepository is an in-memory Repository for sink tests
type mockRepository struct {
	orders    map[string]*Order
	createErr error
	creates   int
}

func newMockRepository() *mockRepository {
	return &mockRepository{orders: make(map[string]*Order)}
}

func (m *mockRepository) Create(ctx context.Context, o *Order) error {
	m.creates++
	if m.createErr != nil {
		return m.createErr
	}
	m.orders[o.OrderNumber] = o
	return nil
}

func (m *mockRepository) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	o, ok := m.orders[orderNumber]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func newTestSink(repo Repository) (*Service, *cart.Service) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	carts := cart.NewService(kv.NewMemoryStore(), log, time.Hour)
	return NewService(repo, carts, log), carts
}

func testInput(t *testing.T, carts *cart.Service) CreateInput {
	t.Helper()
	ctx := context.Background()

	c, err := carts.AddItem(ctx, "s1", catalog.Snapshot{
		ProductID:  1,
		Name:       "Sneaker",
		PriceCents: 2400,
		Line:       catalog.LinePhysical,
	}, 2)
	require.NoError(t, err)

	return CreateInput{
		SessionID:   "s1",
		OrderNumber: "ORD-20260829-ABCD1234",
		Customer:    checkout.CustomerInfo{Email: "jane@example.com", Name: "Jane", Phone: "555-0101"},
		Addresses: checkout.AddressInfo{
			Shipping:       checkout.Address{Street: "1 Main St", City: "Springfield", State: "IL", Zip: "62701"},
			SameAsShipping: true,
		},
		Lines: c.Lines,
		Pricing: pricing.Breakdown{
			SubtotalCents: 4800,
			ShippingCents: 999,
			TaxCents:      384,
			TotalCents:    6183,
		},
		Currency: "usd",
		Payment: payment.Details{
			PaymentID:     "pi_1",
			Method:        "card",
			Status:        "succeeded",
			AmountCents:   6183,
			Currency:      "usd",
			TransactionID: "ch_9",
		},
	}
}

func TestCreateWritesSnapshotAndClearsCart(t *testing.T) {
	repo := newMockRepository()
	svc, carts := newTestSink(repo)
	ctx := context.Background()

	in := testInput(t, carts)
	o, err := svc.Create(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, in.OrderNumber, o.OrderNumber)
	assert.Equal(t, OrderStatusPaid, o.Status)
	assert.Equal(t, PaymentStatusCaptured, o.PaymentStatus)
	assert.Equal(t, int64(6183), o.TotalCents)
	assert.Equal(t, "1 Main St", o.BillingAddress.Street)
	require.Len(t, o.Items, 1)
	assert.Equal(t, int64(4800), o.Items[0].LineTotalCents)

	c, err := carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCreateFailureLeavesCartIntact(t *testing.T) {
	repo := newMockRepository()
	repo.createErr = errors.New("connection refused")
	svc, carts := newTestSink(repo)
	ctx := context.Background()

	in := testInput(t, carts)
	_, err := svc.Create(ctx, in)
	require.Error(t, err)

	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, in.OrderNumber, writeErr.OrderNumber)
	assert.Equal(t, "ch_9", writeErr.TransactionID)
	assert.ErrorIs(t, err, repo.createErr)

	c, err := carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, c.IsEmpty())
}

func TestCreateIsIdempotentByOrderNumber(t *testing.T) {
	repo := newMockRepository()
	svc, carts := newTestSink(repo)
	ctx := context.Background()

	in := testInput(t, carts)
	first, err := svc.Create(ctx, in)
	require.NoError(t, err)

	second, err := svc.Create(ctx, in)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, repo.creates)
}

func TestCreateRequiresOrderNumberAndItems(t *testing.T) {
	repo := newMockRepository()
	svc, carts := newTestSink(repo)
	ctx := context.Background()

	in := testInput(t, carts)
	in.OrderNumber = ""
	_, err := svc.Create(ctx, in)
	assert.Error(t, err)

	in = testInput(t, carts)
	in.Lines = nil
	_, err = svc.Create(ctx, in)
	assert.Error(t, err)
}

func TestCreateUsesDistinctBillingAddress(t *testing.T) {
	repo := newMockRepository()
	svc, carts := newTestSink(repo)
	ctx := context.Background()

	in := testInput(t, carts)
	in.Addresses.SameAsShipping = false
	in.Addresses.Billing = checkout.Address{Street: "2 Oak Ave", City: "Shelbyville", State: "IL", Zip: "62565"}

	o, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "2 Oak Ave", o.BillingAddress.Street)
	assert.Equal(t, "1 Main St", o.ShippingAddress.Street)
}
