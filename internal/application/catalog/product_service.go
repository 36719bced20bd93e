package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/shopngo/storefront/internal/domain/catalog"
)

// SortKey selects the ordering of a derived product view
type SortKey string

const (
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortRating    SortKey = "rating"
)

// Service is the process-wide product store: a cache of catalog data plus
// client-side derived views. Like the cart service it is an explicitly
// owned object constructed once at process start, not a global.
type Service struct {
	client catalog.Client
	cache  catalog.Cache

	mu         sync.RWMutex
	products   []catalog.Product
	categories []string
}

// NewService creates a product store, warming it from the persisted cache
// slot when one exists. A missing or empty slot is not an error; the store
// simply starts cold until Refresh is called.
func NewService(ctx context.Context, client catalog.Client, cache catalog.Cache) (*Service, error) {
	s := &Service{
		client: client,
		cache:  cache,
	}

	snap, err := cache.Load(ctx)
	if err != nil {
		return nil, err
	}
	if snap != nil {
		s.products = snap.Products
		s.categories = snap.Categories
	}
	return s, nil
}

// Refresh fetches all products from the remote catalog, replaces the cache
// and persists the new snapshot. The previous cache is kept on failure.
func (s *Service) Refresh(ctx context.Context) error {
	products, err := s.client.FetchAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	return s.persist(ctx)
}

// RefreshCategories fetches the category list from the remote catalog
func (s *Service) RefreshCategories(ctx context.Context) error {
	categories, err := s.client.FetchCategories(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
	return s.persist(ctx)
}

// Products returns a copy of all cached products
func (s *Service) Products() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyProducts(s.products)
}

// Categories returns a copy of the cached category list
func (s *Service) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// FindByID returns the cached product with the given id, or nil
func (s *Service) FindByID(id int64) *catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p
		}
	}
	return nil
}

// FilterByCategory returns cached products whose category tag matches
func (s *Service) FilterByCategory(category string) []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []catalog.Product
	for _, p := range s.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// Search returns cached products whose title or description contains the
// query, case-insensitively. An empty query returns all products.
func (s *Service) Search(query string) []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return copyProducts(s.products)
	}

	var out []catalog.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// SortBy returns a sorted copy of the given products. Unknown keys return
// the input order unchanged.
func SortBy(products []catalog.Product, key SortKey) []catalog.Product {
	out := copyProducts(products)
	switch key {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			less, _ := out[i].Price.LessThan(out[j].Price)
			return less
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			greater, _ := out[i].Price.GreaterThan(out[j].Price)
			return greater
		})
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating.Rate > out[j].Rating.Rate
		})
	}
	return out
}

// persist writes the current snapshot to the cache slot; callers must hold
// s.mu for writing.
func (s *Service) persist(ctx context.Context) error {
	return s.cache.Save(ctx, &catalog.Snapshot{
		Products:   s.products,
		Categories: s.categories,
	})
}

func copyProducts(in []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, len(in))
	copy(out, in)
	return out
}
