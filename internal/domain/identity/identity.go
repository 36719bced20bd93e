package identity

import (
	"context"
	"time"
)

// Identity is the client-side cached copy of the authenticated user. It is
// owned by the remote auth service; the cached copy is invalidated on
// explicit sign-out or when no restorable session exists.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Session pairs an identity with the access token minted by the remote
// auth service.
type Session struct {
	Identity    Identity  `json:"identity"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the session's access token has passed its expiry
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Provider is the remote auth service surface consumed by the client
type Provider interface {
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
	CurrentSession(ctx context.Context, accessToken string) (*Session, error)
}

// Profile holds the user profile record stored in the remote profiles
// collection, keyed by user id.
type Profile struct {
	UserID          string    `json:"user_id"`
	FullName        string    `json:"full_name"`
	DeliveryAddress string    `json:"delivery_address"`
	Phone           string    `json:"phone"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProfileStore is the remote profiles collection
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
}
