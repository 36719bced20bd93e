package persistence

import (
	"context"
	"encoding/json"

	"github.com/shopngo/storefront/internal/domain/catalog"
)

// ProductSlot is the storage slot holding the cached catalog snapshot
const ProductSlot = "product-storage"

// ProductCache persists the catalog snapshot as verbatim JSON under its
// storage slot
type ProductCache struct {
	store *StateStore
}

// NewProductCache creates a product cache over the given state store
func NewProductCache(store *StateStore) *ProductCache {
	return &ProductCache{store: store}
}

// Load restores the last persisted snapshot, or returns nil when the
// catalog has never been fetched
func (c *ProductCache) Load(ctx context.Context) (*catalog.Snapshot, error) {
	data, err := c.store.Get(ctx, ProductSlot)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var snap catalog.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Save replaces the persisted snapshot
func (c *ProductCache) Save(ctx context.Context, snap *catalog.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.store.Put(ctx, ProductSlot, data)
}
