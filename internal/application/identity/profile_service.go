package identity

import (
	"context"
	"time"

	"github.com/shopngo/storefront/internal/domain/identity"
	"github.com/shopngo/storefront/internal/domain/shared"
)

// ProfileService reads and writes the user profile record in the remote
// profiles collection
type ProfileService struct {
	store identity.ProfileStore
	now   func() time.Time
}

// NewProfileService creates a profile service
func NewProfileService(store identity.ProfileStore) *ProfileService {
	return &ProfileService{
		store: store,
		now:   time.Now,
	}
}

// Get fetches the profile for the given user id. A user who has never
// saved a profile gets NOT_FOUND.
func (s *ProfileService) Get(ctx context.Context, userID string) (*identity.Profile, error) {
	if userID == "" {
		return nil, shared.ErrMissingIdentity
	}

	p, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

// Update upserts the profile record, keyed by user id. All three fields
// are replaced together; the record carries the update timestamp.
func (s *ProfileService) Update(ctx context.Context, userID, fullName, deliveryAddress, phone string) (*identity.Profile, error) {
	if userID == "" {
		return nil, shared.ErrMissingIdentity
	}

	p := &identity.Profile{
		UserID:          userID,
		FullName:        fullName,
		DeliveryAddress: deliveryAddress,
		Phone:           phone,
		UpdatedAt:       s.now(),
	}
	if err := s.store.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
