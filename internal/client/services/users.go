package services

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/kambaz/internal/client/client"
	"github.com/dmitrijs2005/kambaz/internal/client/collection"
	"github.com/dmitrijs2005/kambaz/internal/client/models"
)

// UsersScreen is the administrator's user table.
type UsersScreen struct {
	env   Env
	users *collection.Collection[models.User]

	mu   sync.Mutex
	role models.Role
	name string
}

var _ Screen = (*UsersScreen)(nil)

// NewUsersScreen mounts the user table. Only administrators may open it.
func NewUsersScreen(env Env, api client.UsersAPI) (*UsersScreen, error) {
	if _, err := env.require(models.RoleAdmin); err != nil {
		return nil, err
	}
	remote := collection.RemoteFuncs[models.User]{
		ListFunc:   api.FindAllUsers,
		CreateFunc: api.CreateUser,
		UpdateFunc: func(ctx context.Context, id string, u models.User) (models.User, error) {
			u.ID = id
			return api.UpdateUser(ctx, u)
		},
		DeleteFunc: api.DeleteUser,
	}
	return &UsersScreen{
		env:   env,
		users: collection.New[models.User]("user", remote, env.collectionOptions()...),
	}, nil
}

func (s *UsersScreen) Name() string { return "users" }

// Load fetches every user. Role and name filters apply to the cached rows
// only.
func (s *UsersScreen) Load(ctx context.Context) error {
	_, err := s.users.Load(ctx, nil)
	return err
}

// FilterByRole narrows the table to role. An empty role shows everyone.
func (s *UsersScreen) FilterByRole(role models.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = role
}

// FilterByName narrows the table to names containing name.
func (s *UsersScreen) FilterByName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = strings.TrimSpace(name)
}

func (s *UsersScreen) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role, s.name = "", ""
}

// Len reports how many users are cached, regardless of filters.
func (s *UsersScreen) Len() int { return s.users.Len() }

// Visible returns the cached users that pass the role and name filters.
func (s *UsersScreen) Visible() []models.User {
	s.mu.Lock()
	role, name := s.role, s.name
	s.mu.Unlock()
	return s.users.Visible(collection.RoleIs(role), collection.NameContains(name))
}

func (s *UsersScreen) Select(id string) (models.User, error) {
	if err := s.users.Select(id); err != nil {
		return models.User{}, err
	}
	u, _ := s.users.Selected()
	return u, nil
}

func (s *UsersScreen) Selected() (models.User, bool) { return s.users.Selected() }

// Add validates draft and creates the user.
func (s *UsersScreen) Add(ctx context.Context, draft models.NewUser) (models.User, error) {
	if err := validate(draft); err != nil {
		s.env.notify(ctx, err)
		return models.User{}, err
	}
	return s.users.Create(ctx, draft.User())
}

// Rename changes the first and last name of a listed user.
func (s *UsersScreen) Rename(ctx context.Context, id, first, last string) (models.User, error) {
	return s.users.Edit(ctx, id, func(u *models.User) {
		u.FirstName = strings.TrimSpace(first)
		u.LastName = strings.TrimSpace(last)
		u.Password = ""
	})
}

// SetRole changes the role of a listed user.
func (s *UsersScreen) SetRole(ctx context.Context, id string, role models.Role) (models.User, error) {
	return s.users.Edit(ctx, id, func(u *models.User) {
		u.Role = role
		u.Password = ""
	})
}

// Delete removes a user after confirmation.
func (s *UsersScreen) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func (s *UsersScreen) Close() { s.users.Close() }
