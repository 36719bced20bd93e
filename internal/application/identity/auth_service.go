package identity

import (
	"context"
	"net/mail"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shopngo/storefront/internal/domain/identity"
	"github.com/shopngo/storefront/internal/domain/shared"
)

// AuthService manages the client's authenticated session. The remote auth
// provider owns the session; this service holds the cached copy and keeps
// it consistent across sign-in, sign-out and restore.
type AuthService struct {
	provider identity.Provider
	logger   *zap.Logger

	mu      sync.RWMutex
	session *identity.Session
}

// NewAuthService creates an auth service with no active session
func NewAuthService(provider identity.Provider, logger *zap.Logger) *AuthService {
	return &AuthService{
		provider: provider,
		logger:   logger,
	}
}

// SignUp registers a new account and caches the resulting session
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*identity.Session, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	session, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		s.logger.Warn("sign up failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	s.setSession(session)
	s.logger.Info("user signed up", zap.String("user_id", session.Identity.UserID))
	return session, nil
}

// SignIn authenticates against the remote auth service and caches the
// resulting session
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*identity.Session, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	session, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		s.logger.Warn("sign in failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	s.setSession(session)
	s.logger.Info("user signed in", zap.String("user_id", session.Identity.UserID))
	return session, nil
}

// SignOut revokes the session remotely and drops the cached copy. The
// cached copy is dropped even when revocation fails, so a flaky network
// never leaves the client signed in against the user's intent.
func (s *AuthService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	session := s.session
	s.session = nil
	s.mu.Unlock()

	if session == nil {
		return nil
	}

	if err := s.provider.SignOut(ctx, session.AccessToken); err != nil {
		s.logger.Warn("remote sign out failed, local session dropped", zap.Error(err))
		return err
	}
	s.logger.Info("user signed out", zap.String("user_id", session.Identity.UserID))
	return nil
}

// Restore revalidates a previously issued access token with the remote
// auth service and caches the refreshed session. An expired or rejected
// token leaves the client signed out.
func (s *AuthService) Restore(ctx context.Context, accessToken string) (*identity.Session, error) {
	if accessToken == "" {
		return nil, shared.ErrUnauthorized
	}

	session, err := s.provider.CurrentSession(ctx, accessToken)
	if err != nil {
		s.clearSession()
		return nil, err
	}
	if session == nil || session.Expired(time.Now()) {
		s.clearSession()
		return nil, shared.ErrUnauthorized
	}

	s.setSession(session)
	return session, nil
}

// Current returns the cached session, or nil when signed out
func (s *AuthService) Current() *identity.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// CurrentEmail returns the signed-in user's email, or an error when no
// session is active
func (s *AuthService) CurrentEmail() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return "", shared.ErrMissingIdentity
	}
	return s.session.Identity.Email, nil
}

func (s *AuthService) setSession(session *identity.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
}

func (s *AuthService) clearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
}

func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if len(password) < 6 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 6 characters")
	}
	return nil
}
