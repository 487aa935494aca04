package services

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/kambaz/internal/client/client"
	"github.com/dmitrijs2005/kambaz/internal/client/collection"
	"github.com/dmitrijs2005/kambaz/internal/client/models"
)

// PeopleScreen is the roster of one course.
type PeopleScreen struct {
	env      Env
	courseID string
	roster   *collection.Collection[models.User]

	mu     sync.Mutex
	role   models.Role
	search string
}

var _ Screen = (*PeopleScreen)(nil)

// RosterAPI is what the roster needs from the server.
type RosterAPI interface {
	FindUsersForCourse(ctx context.Context, courseID string) ([]models.User, error)
}

func NewPeopleScreen(env Env, roster RosterAPI, users client.UsersAPI, courseID string) *PeopleScreen {
	remote := collection.RemoteFuncs[models.User]{
		ListFunc: func(ctx context.Context, _ url.Values) ([]models.User, error) {
			return roster.FindUsersForCourse(ctx, courseID)
		},
		UpdateFunc: func(ctx context.Context, id string, u models.User) (models.User, error) {
			u.ID = id
			return users.UpdateUser(ctx, u)
		},
		DeleteFunc: users.DeleteUser,
	}
	return &PeopleScreen{
		env:      env,
		courseID: courseID,
		roster:   collection.New[models.User]("user", remote, env.collectionOptions()...),
	}
}

func (s *PeopleScreen) Name() string { return "people " + s.courseID }

func (s *PeopleScreen) Load(ctx context.Context) error {
	_, err := s.roster.Load(ctx, nil)
	return err
}

// FilterByRole keeps only people with role. An empty role keeps everyone.
func (s *PeopleScreen) FilterByRole(role models.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = role
}

// Search keeps only people matching term in any displayed column.
func (s *PeopleScreen) Search(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = strings.TrimSpace(term)
}

func (s *PeopleScreen) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role, s.search = "", ""
}

func (s *PeopleScreen) Visible() []models.User {
	s.mu.Lock()
	role, search := s.role, s.search
	s.mu.Unlock()
	return s.roster.Visible(collection.RoleIs(role), collection.PeopleSearch(search))
}

func (s *PeopleScreen) Select(id string) (models.User, error) {
	if err := s.roster.Select(id); err != nil {
		return models.User{}, err
	}
	u, _ := s.roster.Selected()
	return u, nil
}

func (s *PeopleScreen) Selected() (models.User, bool) { return s.roster.Selected() }

func (s *PeopleScreen) Deselect() { s.roster.ClearSelection() }

// Rename edits a listed person's name. Faculty and administrators only.
func (s *PeopleScreen) Rename(ctx context.Context, id, first, last string) (models.User, error) {
	if _, err := s.env.require(manageRoles...); err != nil {
		return models.User{}, err
	}
	return s.roster.Edit(ctx, id, func(u *models.User) {
		u.FirstName = strings.TrimSpace(first)
		u.LastName = strings.TrimSpace(last)
		u.Password = ""
	})
}

// DeleteUser deletes the account after confirmation and refetches the
// roster. Faculty and administrators only.
func (s *PeopleScreen) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.env.require(manageRoles...); err != nil {
		return err
	}
	if err := s.roster.Delete(ctx, id); err != nil {
		return err
	}
	if _, err := s.roster.Reload(ctx); err != nil {
		s.env.logger().Warn(ctx, "roster reload failed", "course", s.courseID, "error", err)
	}
	return nil
}

func (s *PeopleScreen) Close() { s.roster.Close() }
