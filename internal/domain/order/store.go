package order

import "context"

// Store is the remote orders collection exposed by the hosted backend
// service. Create assigns the server-side numeric id and creation timestamp
// and returns the stored record. UpdateStatus must be idempotent for the
// success status.
type Store interface {
	Create(ctx context.Context, o *Order) (*Order, error)
	ListByEmail(ctx context.Context, email string) ([]Order, error)
	FindByID(ctx context.Context, id int64) (*Order, error)
	FindLatestByEmail(ctx context.Context, email string) (*Order, error)
	UpdateStatus(ctx context.Context, id int64, status PaymentStatus) error
	UpdateDeliveryAddress(ctx context.Context, id int64, address string) error
	Delete(ctx context.Context, id int64) error
}
