package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopngo/storefront/internal/domain/identity"
	"github.com/shopngo/storefront/internal/domain/shared"
)

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	User        userPayload `json:"user"`
}

// AuthProvider implements identity.Provider over the backend auth endpoints
type AuthProvider struct {
	client *Client
}

// NewAuthProvider creates an auth provider over the given backend client
func NewAuthProvider(client *Client) *AuthProvider {
	return &AuthProvider{client: client}
}

// SignUp registers a new account
func (p *AuthProvider) SignUp(ctx context.Context, email, password string) (*identity.Session, error) {
	var resp tokenResponse
	err := p.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/signup",
		body:   credentialsPayload{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return sessionFromToken(&resp)
}

// SignIn exchanges credentials for a session token
func (p *AuthProvider) SignIn(ctx context.Context, email, password string) (*identity.Session, error) {
	var resp tokenResponse
	err := p.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  url.Values{"grant_type": []string{"password"}},
		body:   credentialsPayload{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return sessionFromToken(&resp)
}

// SignOut revokes the session token
func (p *AuthProvider) SignOut(ctx context.Context, accessToken string) error {
	return p.client.do(ctx, request{
		method:      http.MethodPost,
		path:        "/auth/v1/logout",
		bearerToken: accessToken,
	}, nil)
}

// CurrentSession validates an access token and returns the session it
// belongs to
func (p *AuthProvider) CurrentSession(ctx context.Context, accessToken string) (*identity.Session, error) {
	var user userPayload
	err := p.client.do(ctx, request{
		method:      http.MethodGet,
		path:        "/auth/v1/user",
		bearerToken: accessToken,
	}, &user)
	if err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, shared.ErrUnauthorized
	}
	return &identity.Session{
		Identity:    identity.Identity{UserID: user.ID, Email: user.Email},
		AccessToken: accessToken,
	}, nil
}

func sessionFromToken(resp *tokenResponse) (*identity.Session, error) {
	if resp.AccessToken == "" || resp.User.ID == "" {
		return nil, shared.ErrIntegration
	}
	session := &identity.Session{
		Identity:    identity.Identity{UserID: resp.User.ID, Email: resp.User.Email},
		AccessToken: resp.AccessToken,
	}
	if resp.ExpiresIn > 0 {
		session.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	return session, nil
}
