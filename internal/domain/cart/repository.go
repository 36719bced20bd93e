package cart

import "context"

// Repository persists the cart under a single named storage slot. Save must
// complete durably before a mutating operation is considered finished; Load
// restores the last persisted state verbatim.
type Repository interface {
	Load(ctx context.Context) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
}
