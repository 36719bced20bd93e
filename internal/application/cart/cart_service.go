package cart

import (
	"context"
	"sync"

	"github.com/shopngo/storefront/internal/domain/cart"
	"github.com/shopngo/storefront/internal/domain/catalog"
	"github.com/shopngo/storefront/internal/domain/shared/valueobject"
)

// Service owns the process-wide cart state. It is constructed once at
// process start with an injected repository and passed by reference to
// consumers; there is no package-level singleton.
//
// Every mutating operation durably persists the new state before the
// operation is considered complete. On persistence failure the in-memory
// state is rolled back so memory and storage never diverge.
type Service struct {
	repo cart.Repository

	mu   sync.Mutex
	cart *cart.Cart
}

// NewService creates a cart service, restoring the last persisted cart
// state from the repository. A missing slot yields an empty cart.
func NewService(ctx context.Context, repo cart.Repository) (*Service, error) {
	restored, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if restored == nil {
		restored = cart.New()
	}
	return &Service{
		repo: repo,
		cart: restored,
	}, nil
}

// AddItem adds quantity units of the product to the cart
func (s *Service) AddItem(ctx context.Context, product catalog.Product, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot()
	if err := s.cart.AddItem(product, quantity); err != nil {
		return err
	}
	return s.persist(ctx, snapshot)
}

// RemoveItem removes the item for the given product id
func (s *Service) RemoveItem(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot()
	s.cart.RemoveItem(productID)
	return s.persist(ctx, snapshot)
}

// UpdateQuantity replaces the quantity for the given product id; a
// non-positive quantity removes the item.
func (s *Service) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot()
	s.cart.UpdateQuantity(productID, quantity)
	return s.persist(ctx, snapshot)
}

// Clear empties the cart. The cart is only ever cleared by this explicit
// action, never as a side effect of checkout.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.snapshot()
	s.cart.Clear()
	return s.persist(ctx, snapshot)
}

// Items returns a copy of the current item sequence
func (s *Service) Items() []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]cart.Item, len(s.cart.Items))
	copy(items, s.cart.Items)
	return items
}

// Snapshot returns a detached copy of the whole cart, suitable for handing
// to the checkout flow.
func (s *Service) Snapshot() *cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// TotalPrice returns the sum of price * quantity over all items
func (s *Service) TotalPrice() valueobject.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalPrice()
}

// ItemCount returns the sum of quantities over all items
func (s *Service) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

// snapshot copies the cart; callers must hold s.mu
func (s *Service) snapshot() *cart.Cart {
	items := make([]cart.Item, len(s.cart.Items))
	copy(items, s.cart.Items)
	return &cart.Cart{Items: items}
}

// persist saves the current cart, restoring the pre-mutation snapshot on
// failure; callers must hold s.mu.
func (s *Service) persist(ctx context.Context, previous *cart.Cart) error {
	if err := s.repo.Save(ctx, s.cart); err != nil {
		s.cart = previous
		return err
	}
	return nil
}
