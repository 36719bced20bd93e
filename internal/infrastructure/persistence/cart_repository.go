package persistence

import (
	"context"
	"encoding/json"

	"github.com/shopngo/storefront/internal/domain/cart"
)

// CartSlot is the storage slot holding the persisted cart
const CartSlot = "cart-storage"

// CartRepository persists the cart as verbatim JSON under its storage slot
type CartRepository struct {
	store *StateStore
}

// NewCartRepository creates a cart repository over the given state store
func NewCartRepository(store *StateStore) *CartRepository {
	return &CartRepository{store: store}
}

// Load restores the last persisted cart, or returns nil when no cart has
// been saved yet
func (r *CartRepository) Load(ctx context.Context) (*cart.Cart, error) {
	data, err := r.store.Get(ctx, CartSlot)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save replaces the persisted cart with the given state
func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, CartSlot, data)
}
