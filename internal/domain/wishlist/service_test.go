package wishlist

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/infrastructure/kv"
	"github.com/your-org/storefront/internal/pkg/notify"
)

func newTestService() (*Service, kv.Store) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	store := kv.NewMemoryStore()
	svc := NewService(store, log, time.Hour)
	// Tests drive sequential calls; disable the click-burst window except
	// where a test exercises it explicitly.
	svc.guard = newAddGuard(0)
	return svc, store
}

func snapshot(id uint, name string) catalog.Snapshot {
	return catalog.Snapshot{
		ProductID:  id,
		Name:       name,
		PriceCents: 1000,
		Line:       catalog.LinePhysical,
	}
}

func TestAdd(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	res, err := svc.Add(ctx, "s1", snapshot(1, "Sneaker"))
	require.NoError(t, err)

	assert.True(t, res.Added)
	assert.Equal(t, notify.LevelSuccess, res.Notice.Level)
	assert.Contains(t, res.Notice.Message, "Sneaker")

	w, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, w.Contains(1))
	assert.Len(t, w.Items, 1)
}

func TestAddDuplicateIsNoopWithNotice(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", snapshot(1, "Sneaker"))
	require.NoError(t, err)

	res, err := svc.Add(ctx, "s1", snapshot(1, "Sneaker"))
	require.NoError(t, err)

	assert.False(t, res.Added)
	assert.Equal(t, notify.LevelInfo, res.Notice.Level)
	assert.Contains(t, res.Notice.Message, "already in your wishlist")

	w, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, w.Items, 1)
}

func TestAddInsideCooldownIsDropped(t *testing.T) {
	svc, _ := newTestService()
	svc.guard = newAddGuard(DefaultCooldown)
	ctx := context.Background()

	res, err := svc.Add(ctx, "s1", snapshot(1, "Sneaker"))
	require.NoError(t, err)
	assert.True(t, res.Added)

	res, err = svc.Add(ctx, "s1", snapshot(1, "Sneaker"))
	require.NoError(t, err)
	assert.False(t, res.Added)
	assert.Equal(t, notify.LevelInfo, res.Notice.Level)
	assert.Contains(t, res.Notice.Message, "already being added")

	w, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, w.Items, 1)
}

func TestCooldownIsPerProduct(t *testing.T) {
	svc, _ := newTestService()
	svc.guard = newAddGuard(DefaultCooldown)
	ctx := context.Background()

	res, err := svc.Add(ctx, "s1", snapshot(1, "Sneaker"))
	require.NoError(t, err)
	assert.True(t, res.Added)

	res, err = svc.Add(ctx, "s1", snapshot(2, "Boot"))
	require.NoError(t, err)
	assert.True(t, res.Added)
}

func TestRemove(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", snapshot(1, "Sneaker"))
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", snapshot(2, "Boot"))
	require.NoError(t, err)

	w, err := svc.Remove(ctx, "s1", 1)
	require.NoError(t, err)
	assert.False(t, w.Contains(1))
	assert.True(t, w.Contains(2))
}

func TestRemoveAbsentProductIsNoop(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	w, err := svc.Remove(ctx, "s1", 99)
	require.NoError(t, err)
	assert.Empty(t, w.Items)
}

func TestContains(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", snapshot(1, "Sneaker"))
	require.NoError(t, err)

	ok, err := svc.Contains(ctx, "s1", 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Contains(ctx, "s1", 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", snapshot(1, "Sneaker"))
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "s1"))

	w, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, w.Items)
}

func TestMalformedStoredWishlistStartsEmpty(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "wishlist:session:s1", "not json", time.Hour))

	w, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, w.Items)
	assert.True(t, w.Hydrated)
}

func TestStoredDuplicatesAreDeduped(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	raw := `[{"product":{"product_id":1,"name":"Sneaker"}},` +
		`{"product":{"product_id":1,"name":"Sneaker"}},` +
		`{"product":{"product_id":2,"name":"Boot"}}]`
	require.NoError(t, store.Set(ctx, "wishlist:session:s1", raw, time.Hour))

	w, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, w.Items, 2)
}

func TestGuardExpires(t *testing.T) {
	g := newAddGuard(10 * time.Millisecond)
	now := time.Now()

	assert.True(t, g.tryAcquire("k", now))
	assert.False(t, g.tryAcquire("k", now.Add(5*time.Millisecond)))
	assert.True(t, g.tryAcquire("k", now.Add(15*time.Millisecond)))
}
