package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopngo/storefront/internal/domain/identity"
)

const profilesPath = "/rest/v1/profiles"

// profileRow mirrors a profiles table row, keyed by user id
type profileRow struct {
	UserID          string    `json:"user_id"`
	FullName        string    `json:"full_name"`
	DeliveryAddress string    `json:"delivery_address"`
	Phone           string    `json:"phone"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// ProfileStore implements identity.ProfileStore over the backend profiles
// collection
type ProfileStore struct {
	client *Client
}

// NewProfileStore creates a profile store over the given backend client
func NewProfileStore(client *Client) *ProfileStore {
	return &ProfileStore{client: client}
}

// Get returns the profile for the given user id, or nil when the user has
// never saved one
func (s *ProfileStore) Get(ctx context.Context, userID string) (*identity.Profile, error) {
	query := url.Values{
		"user_id": []string{"eq." + userID},
		"select":  []string{"*"},
	}

	var rows []profileRow
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   profilesPath,
		query:  query,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	row := rows[0]
	return &identity.Profile{
		UserID:          row.UserID,
		FullName:        row.FullName,
		DeliveryAddress: row.DeliveryAddress,
		Phone:           row.Phone,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}

// Upsert inserts or replaces the profile row for the profile's user id
func (s *ProfileStore) Upsert(ctx context.Context, p *identity.Profile) error {
	return s.client.do(ctx, request{
		method: http.MethodPost,
		path:   profilesPath,
		prefer: "resolution=merge-duplicates",
		body: profileRow{
			UserID:          p.UserID,
			FullName:        p.FullName,
			DeliveryAddress: p.DeliveryAddress,
			Phone:           p.Phone,
			UpdatedAt:       p.UpdatedAt,
		},
	}, nil)
}
