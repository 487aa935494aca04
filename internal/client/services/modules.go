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

// CourseAPI is the part of the server a course screen reads its header from.
type CourseAPI interface {
	FindCourse(ctx context.Context, id string) (models.Course, error)
}

// ModulesScreen lists and edits the modules of one course.
type ModulesScreen struct {
	env      Env
	courseID string
	courses  CourseAPI
	modules  *collection.Collection[models.Module]

	mu     sync.Mutex
	course models.Course
}

var _ Screen = (*ModulesScreen)(nil)

func NewModulesScreen(env Env, courses CourseAPI, api client.ModulesAPI, courseID string) *ModulesScreen {
	remote := collection.RemoteFuncs[models.Module]{
		ListFunc: func(ctx context.Context, _ url.Values) ([]models.Module, error) {
			return api.FindModulesForCourse(ctx, courseID)
		},
		CreateFunc: func(ctx context.Context, m models.Module) (models.Module, error) {
			return api.CreateModule(ctx, courseID, m)
		},
		UpdateFunc: func(ctx context.Context, id string, m models.Module) (models.Module, error) {
			m.ID = id
			return api.UpdateModule(ctx, m)
		},
		DeleteFunc: api.DeleteModule,
	}
	return &ModulesScreen{
		env:      env,
		courseID: courseID,
		courses:  courses,
		modules:  collection.New[models.Module]("module", remote, env.collectionOptions()...),
	}
}

func (s *ModulesScreen) Name() string { return "modules " + s.courseID }

// Load fetches the course header and its modules. A missing header is only
// logged.
func (s *ModulesScreen) Load(ctx context.Context) error {
	if s.courses != nil {
		c, err := s.courses.FindCourse(ctx, s.courseID)
		if err != nil {
			s.env.logger().Warn(ctx, "course fetch failed", "course", s.courseID, "error", err)
		} else {
			s.mu.Lock()
			s.course = c
			s.mu.Unlock()
		}
	}
	_, err := s.modules.Load(ctx, nil)
	return err
}

// Course returns the header fetched by Load.
func (s *ModulesScreen) Course() models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.course
}

func (s *ModulesScreen) Modules(search string) []models.Module {
	return s.modules.Visible(collection.ModuleNameContains(search))
}

func (s *ModulesScreen) Select(id string) (models.Module, error) {
	if err := s.modules.Select(id); err != nil {
		return models.Module{}, err
	}
	m, _ := s.modules.Selected()
	return m, nil
}

// Add creates a module named name in this course.
func (s *ModulesScreen) Add(ctx context.Context, name string) (models.Module, error) {
	if _, err := s.env.require(manageRoles...); err != nil {
		return models.Module{}, err
	}
	draft := models.ModuleDraft{Name: strings.TrimSpace(name), Course: s.courseID}
	if err := validate(draft); err != nil {
		s.env.notify(ctx, err)
		return models.Module{}, err
	}
	return s.modules.Create(ctx, draft.Module())
}

// Rename sets the name of a listed module.
func (s *ModulesScreen) Rename(ctx context.Context, id, name string) (models.Module, error) {
	if _, err := s.env.require(manageRoles...); err != nil {
		return models.Module{}, err
	}
	name = strings.TrimSpace(name)
	if err := validate(models.ModuleDraft{Name: name}); err != nil {
		s.env.notify(ctx, err)
		return models.Module{}, err
	}
	return s.modules.Edit(ctx, id, func(m *models.Module) { m.Name = name })
}

// Delete removes a module after confirmation.
func (s *ModulesScreen) Delete(ctx context.Context, id string) error {
	if _, err := s.env.require(manageRoles...); err != nil {
		return err
	}
	return s.modules.Delete(ctx, id)
}

func (s *ModulesScreen) Close() { s.modules.Close() }
