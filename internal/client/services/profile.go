package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/kambaz/internal/client/models"
	"github.com/dmitrijs2005/kambaz/internal/client/session"
)

// ProfileUpdater saves the signed-in user's own record.
type ProfileUpdater interface {
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
}

// ProfileEdit lists the profile fields a user may change. Empty fields are
// left as they are.
type ProfileEdit struct {
	FirstName string
	LastName  string
	Email     string
	DOB       string
	Password  string
}

// ProfileScreen shows and edits the signed-in user.
type ProfileScreen struct {
	env Env
	api ProfileUpdater
}

var _ Screen = (*ProfileScreen)(nil)

func NewProfileScreen(env Env, api ProfileUpdater) *ProfileScreen {
	return &ProfileScreen{env: env, api: api}
}

func (s *ProfileScreen) Name() string { return "profile" }

// Load refetches the profile. Any failure ends up as a sign-in redirect in
// the caller; an auth failure also clears the session.
func (s *ProfileScreen) Load(ctx context.Context) error {
	if s.env.Session == nil {
		return session.ErrNotSignedIn
	}
	if _, err := s.env.Session.Refresh(ctx); err != nil {
		s.env.logger().Warn(ctx, "profile fetch failed", "error", err)
		return err
	}
	return nil
}

func (s *ProfileScreen) Current() (models.User, bool) {
	if s.env.Session == nil {
		return models.User{}, false
	}
	return s.env.Session.Current()
}

// Update saves edit and stores the server's copy in the session.
func (s *ProfileScreen) Update(ctx context.Context, edit ProfileEdit) (models.User, error) {
	u, err := s.env.require()
	if err != nil {
		return models.User{}, err
	}
	apply := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	apply(&u.FirstName, edit.FirstName)
	apply(&u.LastName, edit.LastName)
	apply(&u.Email, edit.Email)
	apply(&u.DOB, edit.DOB)
	u.Password = edit.Password

	if err := validate(struct {
		Email string `json:"email" validate:"omitempty,email"`
	}{u.Email}); err != nil {
		s.env.notify(ctx, err)
		return models.User{}, err
	}

	updated, err := s.api.UpdateUser(ctx, u)
	if err != nil {
		s.env.logger().Error(ctx, "profile update failed", "error", err)
		s.env.notify(ctx, err)
		return models.User{}, err
	}
	s.env.Session.Set(updated)
	return updated, nil
}

// SignOut ends the session.
func (s *ProfileScreen) SignOut(ctx context.Context) error {
	if s.env.Session == nil {
		return session.ErrNotSignedIn
	}
	if err := s.env.Session.SignOut(ctx); err != nil {
		s.env.notify(ctx, err)
		return err
	}
	return nil
}

func (s *ProfileScreen) Close() {}
