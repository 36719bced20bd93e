package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopngo/storefront/internal/domain/cart"
	"github.com/shopngo/storefront/internal/domain/catalog"
	"github.com/shopngo/storefront/internal/domain/shared/valueobject"
)

func newTestStore(t *testing.T) *StateStore {
	t.Helper()
	s, err := OpenStateStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStateStore_GetAbsentSlot(t *testing.T) {
	s := newTestStore(t)

	data, err := s.Get(context.Background(), "never-written")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestStateStore_PutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "slot", []byte(`{"hello":"world"}`)))

	data, err := s.Get(ctx, "slot")
	require.NoError(t, err)
	assert.JSONEq(t, `{"hello":"world"}`, string(data))
}

func TestStateStore_PutReplaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "slot", []byte(`"first"`)))
	require.NoError(t, s.Put(ctx, "slot", []byte(`"second"`)))

	data, err := s.Get(ctx, "slot")
	require.NoError(t, err)
	assert.Equal(t, `"second"`, string(data))
}

func TestStateStore_DeleteAbsentSlotIsNoOp(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Delete(context.Background(), "never-written"))
}

func TestCartRepository_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	repo := NewCartRepository(s)
	ctx := context.Background()

	price, err := valueobject.NewMoneyEURFromString("12.25")
	require.NoError(t, err)

	c := cart.New()
	require.NoError(t, c.AddItem(catalog.Product{ID: 1, Title: "Backpack", Price: price}, 3))
	require.NoError(t, repo.Save(ctx, c))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, int64(1), loaded.Items[0].Product.ID)
	assert.Equal(t, 3, loaded.Items[0].Quantity)
	assert.True(t, loaded.TotalPrice().Equals(c.TotalPrice()))
}

func TestCartRepository_LoadBeforeFirstSave(t *testing.T) {
	s := newTestStore(t)
	repo := NewCartRepository(s)

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestProductCache_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	cache := NewProductCache(s)
	ctx := context.Background()

	price, err := valueobject.NewMoneyEURFromString("109.95")
	require.NoError(t, err)

	snap := &catalog.Snapshot{
		Products: []catalog.Product{
			{ID: 1, Title: "Backpack", Price: price, Category: "men's clothing", Rating: catalog.Rating{Rate: 3.9, Count: 120}},
		},
		Categories: []string{"men's clothing", "jewelery"},
	}
	require.NoError(t, cache.Save(ctx, snap))

	loaded, err := cache.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Products, 1)
	assert.Equal(t, "Backpack", loaded.Products[0].Title)
	assert.Equal(t, float64(3.9), loaded.Products[0].Rating.Rate)
	assert.Equal(t, []string{"men's clothing", "jewelery"}, loaded.Categories)
}

func TestProductCache_LoadBeforeFirstSave(t *testing.T) {
	s := newTestStore(t)
	cache := NewProductCache(s)

	loaded, err := cache.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSlotsAreIndependent(t *testing.T) {
	s := newTestStore(t)
	repo := NewCartRepository(s)
	cache := NewProductCache(s)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, cart.New()))
	require.NoError(t, cache.Save(ctx, &catalog.Snapshot{Categories: []string{"jewelery"}}))

	c, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	snap, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"jewelery"}, snap.Categories)
}
