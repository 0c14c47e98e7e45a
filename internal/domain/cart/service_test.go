package cart

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/infrastructure/kv"
)

func newTestService() (*Service, kv.Store) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	store := kv.NewMemoryStore()
	return NewService(store, log, time.Hour), store
}

func snapshot(id uint, priceCents int64) catalog.Snapshot {
	return catalog.Snapshot{
		ProductID:  id,
		Name:       "Test Product",
		Brand:      "Acme",
		PriceCents: priceCents,
		Line:       catalog.LinePhysical,
	}
}

func TestAddItemCreatesLine(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "s1", snapshot(1, 2400), 2)
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.NotEmpty(t, c.Lines[0].LineID)
	assert.Equal(t, int64(4800), c.TotalCents())
}

func TestAddItemMergesExistingLine(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", snapshot(1, 2400), 1)
	require.NoError(t, err)
	c, err := svc.AddItem(ctx, "s1", snapshot(1, 2400), 3)
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 4, c.Lines[0].Quantity)
	assert.Equal(t, 4, c.ItemCount())
}

func TestAddItemClampsQuantity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "s1", snapshot(1, 2400), 0)
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", snapshot(1, 2400), 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", snapshot(2, 1000), 1)
	require.NoError(t, err)

	c, err := svc.RemoveItem(ctx, "s1", 1)
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, uint(2), c.Lines[0].Product.ProductID)
}

func TestRemoveItemUnknownProductIsNoop(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", snapshot(1, 2400), 1)
	require.NoError(t, err)

	c, err := svc.RemoveItem(ctx, "s1", 99)
	require.NoError(t, err)
	assert.Len(t, c.Lines, 1)
}

func TestAddThenRemoveLeavesCartWithoutProduct(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", snapshot(7, 500), 2)
	require.NoError(t, err)
	_, err = svc.RemoveItem(ctx, "s1", 7)
	require.NoError(t, err)

	c, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, -1, c.findLine(7))
}

func TestUpdateQuantity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", snapshot(1, 2400), 1)
	require.NoError(t, err)

	c, err := svc.UpdateQuantity(ctx, "s1", 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Lines[0].Quantity)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", snapshot(1, 2400), 2)
	require.NoError(t, err)

	c, err := svc.UpdateQuantity(ctx, "s1", 1, 0)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestUpdateQuantityUnknownProductDoesNotCreateLine(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	c, err := svc.UpdateQuantity(ctx, "s1", 42, 3)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestClear(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", snapshot(1, 2400), 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "s1"))

	c, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Hydrated)
}

func TestSalePriceUsedInTotals(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	sale := int64(1800)
	snap := snapshot(1, 2400)
	snap.SalePriceCents = &sale

	c, err := svc.AddItem(ctx, "s1", snap, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), c.TotalCents())
}

func TestMalformedStoredCartStartsEmpty(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cart:session:s1", "{not json", time.Hour))

	c, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Hydrated)

	// A mutation after corruption writes a clean state back
	c, err = svc.AddItem(ctx, "s1", snapshot(1, 1000), 1)
	require.NoError(t, err)
	assert.Len(t, c.Lines, 1)
}

func TestStoredLinesWithBadShapeAreDropped(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	raw := `[{"line_id":"a","product":{"product_id":1,"name":"ok","price_cents":100},"quantity":2},` +
		`{"line_id":"b","product":{"product_id":0},"quantity":1},` +
		`{"line_id":"c","product":{"product_id":3,"price_cents":50},"quantity":0}]`
	require.NoError(t, store.Set(ctx, "cart:session:s1", raw, time.Hour))

	c, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, uint(1), c.Lines[0].Product.ProductID)
}

func TestCartSurvivesServiceRestart(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	store := kv.NewMemoryStore()
	ctx := context.Background()

	first := NewService(store, log, time.Hour)
	_, err := first.AddItem(ctx, "s1", snapshot(1, 2400), 2)
	require.NoError(t, err)

	second := NewService(store, log, time.Hour)
	c, err := second.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestCartLine(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	digital := snapshot(1, 1000)
	digital.Line = catalog.LineDigital

	c, err := svc.AddItem(ctx, "s1", digital, 1)
	require.NoError(t, err)
	assert.Equal(t, catalog.LineDigital, c.Line())

	c, err = svc.AddItem(ctx, "s1", snapshot(2, 500), 1)
	require.NoError(t, err)
	assert.Equal(t, catalog.LinePhysical, c.Line())
}
