package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shopngo/storefront/internal/domain/catalog"
	"github.com/shopngo/storefront/internal/domain/shared"
	"github.com/shopngo/storefront/internal/domain/shared/valueobject"
)

// MockCatalogClient is a mock implementation of catalog.Client
type MockCatalogClient struct {
	mock.Mock
}

func (m *MockCatalogClient) FetchAll(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockCatalogClient) FetchCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCatalogClient) FetchByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

// MockCatalogCache is a mock implementation of catalog.Cache
type MockCatalogCache struct {
	mock.Mock
}

func (m *MockCatalogCache) Load(ctx context.Context) (*catalog.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Snapshot), args.Error(1)
}

func (m *MockCatalogCache) Save(ctx context.Context, snap *catalog.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func price(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyEURFromString(s)
	require.NoError(t, err)
	return m
}

func sampleProducts(t *testing.T) []catalog.Product {
	t.Helper()
	return []catalog.Product{
		{ID: 1, Title: "Fjallraven Backpack", Price: price(t, "109.95"), Description: "Fits 15 inch laptops", Category: "men's clothing", Rating: catalog.Rating{Rate: 3.9, Count: 120}},
		{ID: 2, Title: "Mens Casual T-Shirt", Price: price(t, "22.30"), Description: "Slim fit", Category: "men's clothing", Rating: catalog.Rating{Rate: 4.1, Count: 259}},
		{ID: 3, Title: "Gold Petite Micropave", Price: price(t, "168.00"), Description: "Satisfaction guaranteed", Category: "jewelery", Rating: catalog.Rating{Rate: 3.9, Count: 70}},
	}
}

func TestNewService_RestoresSnapshot(t *testing.T) {
	client := new(MockCatalogClient)
	cache := new(MockCatalogCache)
	products := sampleProducts(t)
	cache.On("Load", mock.Anything).Return(&catalog.Snapshot{
		Products:   products,
		Categories: []string{"men's clothing", "jewelery"},
	}, nil)

	svc, err := NewService(context.Background(), client, cache)
	require.NoError(t, err)
	assert.Len(t, svc.Products(), 3)
	assert.Equal(t, []string{"men's clothing", "jewelery"}, svc.Categories())
	cache.AssertExpectations(t)
}

func TestNewService_ColdStart(t *testing.T) {
	client := new(MockCatalogClient)
	cache := new(MockCatalogCache)
	cache.On("Load", mock.Anything).Return(nil, nil)

	svc, err := NewService(context.Background(), client, cache)
	require.NoError(t, err)
	assert.Empty(t, svc.Products())
	assert.Empty(t, svc.Categories())
}

func TestNewService_LoadFailure(t *testing.T) {
	client := new(MockCatalogClient)
	cache := new(MockCatalogCache)
	cache.On("Load", mock.Anything).Return(nil, assert.AnError)

	svc, err := NewService(context.Background(), client, cache)
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestRefresh_ReplacesAndPersists(t *testing.T) {
	client := new(MockCatalogClient)
	cache := new(MockCatalogCache)
	cache.On("Load", mock.Anything).Return(nil, nil)
	products := sampleProducts(t)
	client.On("FetchAll", mock.Anything).Return(products, nil)
	cache.On("Save", mock.Anything, mock.MatchedBy(func(snap *catalog.Snapshot) bool {
		return len(snap.Products) == 3
	})).Return(nil)

	svc, err := NewService(context.Background(), client, cache)
	require.NoError(t, err)
	require.NoError(t, svc.Refresh(context.Background()))
	assert.Len(t, svc.Products(), 3)
	client.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestRefresh_KeepsCacheOnNetworkError(t *testing.T) {
	client := new(MockCatalogClient)
	cache := new(MockCatalogCache)
	products := sampleProducts(t)
	cache.On("Load", mock.Anything).Return(&catalog.Snapshot{Products: products}, nil)
	client.On("FetchAll", mock.Anything).Return(nil, shared.ErrNetwork)

	svc, err := NewService(context.Background(), client, cache)
	require.NoError(t, err)
	err = svc.Refresh(context.Background())
	assert.ErrorIs(t, err, shared.ErrNetwork)
	assert.Len(t, svc.Products(), 3, "stale cache should survive a failed refresh")
	cache.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRefreshCategories(t *testing.T) {
	client := new(MockCatalogClient)
	cache := new(MockCatalogCache)
	cache.On("Load", mock.Anything).Return(nil, nil)
	client.On("FetchCategories", mock.Anything).Return([]string{"electronics", "jewelery"}, nil)
	cache.On("Save", mock.Anything, mock.Anything).Return(nil)

	svc, err := NewService(context.Background(), client, cache)
	require.NoError(t, err)
	require.NoError(t, svc.RefreshCategories(context.Background()))
	assert.Equal(t, []string{"electronics", "jewelery"}, svc.Categories())
}

func TestFindByID(t *testing.T) {
	client := new(MockCatalogClient)
	cache := new(MockCatalogCache)
	cache.On("Load", mock.Anything).Return(&catalog.Snapshot{Products: sampleProducts(t)}, nil)

	svc, err := NewService(context.Background(), client, cache)
	require.NoError(t, err)

	p := svc.FindByID(2)
	require.NotNil(t, p)
	assert.Equal(t, "Mens Casual T-Shirt", p.Title)
	assert.Nil(t, svc.FindByID(99))
}

func TestFilterByCategory(t *testing.T) {
	client := new(MockCatalogClient)
	cache := new(MockCatalogCache)
	cache.On("Load", mock.Anything).Return(&catalog.Snapshot{Products: sampleProducts(t)}, nil)

	svc, err := NewService(context.Background(), client, cache)
	require.NoError(t, err)

	men := svc.FilterByCategory("men's clothing")
	assert.Len(t, men, 2)
	assert.Len(t, svc.FilterByCategory("Jewelery"), 1, "category match is case-insensitive")
	assert.Empty(t, svc.FilterByCategory("electronics"))
}

func TestSearch(t *testing.T) {
	client := new(MockCatalogClient)
	cache := new(MockCatalogCache)
	cache.On("Load", mock.Anything).Return(&catalog.Snapshot{Products: sampleProducts(t)}, nil)

	svc, err := NewService(context.Background(), client, cache)
	require.NoError(t, err)

	assert.Len(t, svc.Search("BACKPACK"), 1)
	assert.Len(t, svc.Search("satisfaction"), 1, "description text is searched too")
	assert.Len(t, svc.Search(""), 3)
	assert.Empty(t, svc.Search("nonexistent"))
}

func TestSortBy(t *testing.T) {
	products := sampleProducts(t)

	asc := SortBy(products, SortPriceAsc)
	assert.Equal(t, int64(2), asc[0].ID)
	assert.Equal(t, int64(3), asc[2].ID)

	desc := SortBy(products, SortPriceDesc)
	assert.Equal(t, int64(3), desc[0].ID)

	byRating := SortBy(products, SortRating)
	assert.Equal(t, int64(2), byRating[0].ID)

	// unknown key keeps input order
	same := SortBy(products, SortKey("bogus"))
	assert.Equal(t, int64(1), same[0].ID)

	// input slice is never mutated
	assert.Equal(t, int64(1), products[0].ID)
}
