package order

import (
	"context"
	"sort"

	"github.com/shopngo/storefront/internal/domain/order"
	"github.com/shopngo/storefront/internal/domain/shared"
)

// Service exposes order history operations over the remote order store
type Service struct {
	store order.Store
}

// NewService creates an order service
func NewService(store order.Store) *Service {
	return &Service{store: store}
}

// ListByUser returns the user's orders, newest first. The store is asked
// for that ordering; the result is re-sorted locally so the guarantee does
// not depend on the backend honoring the query parameter.
func (s *Service) ListByUser(ctx context.Context, email string) ([]order.Order, error) {
	if email == "" {
		return nil, shared.ErrMissingIdentity
	}

	orders, err := s.store.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// Get returns a single order by id
func (s *Service) Get(ctx context.Context, id int64) (*order.Order, error) {
	o, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, shared.ErrNotFound
	}
	return o, nil
}

// Delete removes an order after verifying it exists, so a missing record
// surfaces as NOT_FOUND instead of a silent no-op delete.
func (s *Service) Delete(ctx context.Context, id int64) error {
	o, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return shared.ErrNotFound
	}
	return s.store.Delete(ctx, id)
}

// AddDeliveryAddress attaches a delivery address to the user's most recent
// order. The latest order is the checkout that just completed, which is the
// only order an address prompt ever targets.
func (s *Service) AddDeliveryAddress(ctx context.Context, email, address string) (*order.Order, error) {
	if email == "" {
		return nil, shared.ErrMissingIdentity
	}
	if address == "" {
		return nil, shared.ErrEmptyAddress
	}

	latest, err := s.store.FindLatestByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, shared.ErrNotFound
	}

	if err := latest.SetDeliveryAddress(address); err != nil {
		return nil, err
	}
	if err := s.store.UpdateDeliveryAddress(ctx, latest.ID, address); err != nil {
		return nil, err
	}
	return latest, nil
}

// Reconcile marks an order as paid. It is safe to call more than once for
// the same order; a second confirmation of an already paid order succeeds
// without another store write.
func (s *Service) Reconcile(ctx context.Context, id int64) error {
	o, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return shared.ErrNotFound
	}
	if o.PaymentStatus == order.PaymentStatusSuccess {
		return nil
	}

	if err := o.MarkPaid(); err != nil {
		return err
	}
	return s.store.UpdateStatus(ctx, id, order.PaymentStatusSuccess)
}
