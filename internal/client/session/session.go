// Package session holds the signed-in user for the lifetime of the CLI.
//
// A Session is created once at startup, initialized from the server's
// profile endpoint and handed to every screen, either directly or through a
// context (see NewContext and FromContext).
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/kambaz/internal/client/client"
	"github.com/dmitrijs2005/kambaz/internal/client/models"
	"github.com/dmitrijs2005/kambaz/internal/logging"
)

var (
	ErrNotSignedIn = errors.New("not signed in")
	ErrForbidden   = errors.New("not allowed for this role")
)

// CredentialStore forgets persisted credentials on sign-out.
type CredentialStore interface {
	Clear(ctx context.Context) error
}

// Session is the current user, or nobody. It is safe for concurrent use.
type Session struct {
	api    client.AccountAPI
	store  CredentialStore
	logger logging.Logger

	mu   sync.RWMutex
	user *models.User
}

// New returns an empty session. store may be nil when credentials are not
// persisted.
func New(api client.AccountAPI, store CredentialStore, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Session{api: api, store: store, logger: logger.With("component", "session")}
}

// Init fetches the profile for any credential already held by the transport.
// A failure leaves the session empty and is only logged.
func (s *Session) Init(ctx context.Context) {
	u, err := s.api.Profile(ctx)
	if err != nil {
		s.clear()
		if client.IsAuth(err) {
			s.logger.Info(ctx, "no active session")
		} else {
			s.logger.Warn(ctx, "profile fetch failed", "error", err)
		}
		return
	}
	s.Set(u)
	s.logger.Info(ctx, "session restored", "user", u.Username)
}

// SignIn validates creds and authenticates. On failure the session is left
// as it was.
func (s *Session) SignIn(ctx context.Context, creds models.Credentials) (models.User, error) {
	if err := models.Validate(creds); err != nil {
		return models.User{}, err
	}
	u, err := s.api.SignIn(ctx, creds)
	if err != nil {
		s.logger.Warn(ctx, "sign-in failed", "user", creds.Username, "error", err)
		return models.User{}, fmt.Errorf("sign in: %w", err)
	}
	s.Set(u)
	s.logger.Info(ctx, "signed in", "user", u.Username, "role", u.Role)
	return u, nil
}

// SignUp validates the draft (including the password confirmation) and
// registers a new account, which becomes the current user.
func (s *Session) SignUp(ctx context.Context, draft models.SignUp) (models.User, error) {
	if err := models.Validate(draft); err != nil {
		return models.User{}, err
	}
	u, err := s.api.SignUp(ctx, draft.User())
	if err != nil {
		s.logger.Warn(ctx, "sign-up failed", "user", draft.Username, "error", err)
		return models.User{}, fmt.Errorf("sign up: %w", err)
	}
	s.Set(u)
	s.logger.Info(ctx, "signed up", "user", u.Username)
	return u, nil
}

// SignOut ends the server session, then clears the user and the persisted
// credentials. If the server call fails the session is kept.
func (s *Session) SignOut(ctx context.Context) error {
	if err := s.api.SignOut(ctx); err != nil {
		s.logger.Error(ctx, "sign-out failed", "error", err)
		return fmt.Errorf("sign out: %w", err)
	}
	s.clear()
	if s.store != nil {
		if err := s.store.Clear(ctx); err != nil {
			s.logger.Error(ctx, "clearing stored credentials failed", "error", err)
			return fmt.Errorf("sign out: %w", err)
		}
	}
	s.logger.Info(ctx, "signed out")
	return nil
}

// Refresh re-reads the profile. An auth failure ends the session.
func (s *Session) Refresh(ctx context.Context) (models.User, error) {
	u, err := s.api.Profile(ctx)
	if err != nil {
		if client.IsAuth(err) {
			s.clear()
		}
		return models.User{}, fmt.Errorf("profile: %w", err)
	}
	s.Set(u)
	return u, nil
}

// Current returns the signed-in user.
func (s *Session) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Set replaces the current user, e.g. after a profile update.
func (s *Session) Set(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.Password = ""
	s.user = &u
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

// Require returns the current user if one is signed in and, when roles are
// given, holds one of them.
func (s *Session) Require(roles ...models.Role) (models.User, error) {
	u, ok := s.Current()
	if !ok {
		return models.User{}, ErrNotSignedIn
	}
	if len(roles) > 0 && !u.HasRole(roles...) {
		return u, fmt.Errorf("%w: %s", ErrForbidden, u.Role)
	}
	return u, nil
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by NewContext.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok
}

// IsSignInRequired reports whether err should send the user back to sign-in.
func IsSignInRequired(err error) bool {
	return errors.Is(err, ErrNotSignedIn) || client.IsAuth(err)
}
