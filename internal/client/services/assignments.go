package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/kambaz/internal/client/client"
	"github.com/dmitrijs2005/kambaz/internal/client/collection"
	"github.com/dmitrijs2005/kambaz/internal/client/models"
)

// AssignmentsScreen lists the assignments of one course.
type AssignmentsScreen struct {
	env         Env
	courseID    string
	assignments *collection.Collection[models.Assignment]
}

var _ Screen = (*AssignmentsScreen)(nil)

func NewAssignmentsScreen(env Env, api client.AssignmentsAPI, courseID string) *AssignmentsScreen {
	remote := collection.RemoteFuncs[models.Assignment]{
		ListFunc: func(ctx context.Context, _ url.Values) ([]models.Assignment, error) {
			return api.FindAssignmentsForCourse(ctx, courseID)
		},
		CreateFunc: func(ctx context.Context, a models.Assignment) (models.Assignment, error) {
			return api.CreateAssignment(ctx, courseID, a)
		},
		UpdateFunc: func(ctx context.Context, id string, a models.Assignment) (models.Assignment, error) {
			a.ID = id
			return api.UpdateAssignment(ctx, a)
		},
		DeleteFunc: api.DeleteAssignment,
	}
	return &AssignmentsScreen{
		env:         env,
		courseID:    courseID,
		assignments: collection.New[models.Assignment]("assignment", remote, env.collectionOptions()...),
	}
}

func (s *AssignmentsScreen) Name() string { return "assignments " + s.courseID }

func (s *AssignmentsScreen) Load(ctx context.Context) error {
	_, err := s.assignments.Load(ctx, nil)
	return err
}

// Search returns the assignments whose title contains term.
func (s *AssignmentsScreen) Search(term string) []models.Assignment {
	return s.assignments.Visible(collection.TitleContains(term))
}

func (s *AssignmentsScreen) Select(id string) (models.Assignment, error) {
	if err := s.assignments.Select(id); err != nil {
		return models.Assignment{}, err
	}
	a, _ := s.assignments.Selected()
	return a, nil
}

// Add creates an assignment titled title. Faculty and administrators only.
func (s *AssignmentsScreen) Add(ctx context.Context, title string, points int, due string) (models.Assignment, error) {
	if _, err := s.env.require(manageRoles...); err != nil {
		return models.Assignment{}, err
	}
	draft := models.AssignmentDraft{
		Title:   strings.TrimSpace(title),
		Points:  points,
		DueDate: strings.TrimSpace(due),
		Course:  s.courseID,
	}
	if err := validate(draft); err != nil {
		s.env.notify(ctx, err)
		return models.Assignment{}, err
	}
	return s.assignments.Create(ctx, draft.Assignment())
}

// Retitle renames a listed assignment. Faculty and administrators only.
func (s *AssignmentsScreen) Retitle(ctx context.Context, id, title string) (models.Assignment, error) {
	if _, err := s.env.require(manageRoles...); err != nil {
		return models.Assignment{}, err
	}
	title = strings.TrimSpace(title)
	if err := validate(models.AssignmentDraft{Title: title}); err != nil {
		s.env.notify(ctx, err)
		return models.Assignment{}, err
	}
	return s.assignments.Edit(ctx, id, func(a *models.Assignment) { a.Title = title })
}

// Delete removes an assignment after confirmation. Faculty and
// administrators only.
func (s *AssignmentsScreen) Delete(ctx context.Context, id string) error {
	if _, err := s.env.require(manageRoles...); err != nil {
		return err
	}
	a, ok := s.assignments.Get(id)
	prompt := "Are you sure you want to delete this assignment?"
	if ok && a.Title != "" {
		prompt = "Are you sure you want to delete " + a.Title + "?"
	}
	return s.assignments.DeleteWithPrompt(ctx, id, prompt)
}

func (s *AssignmentsScreen) Close() { s.assignments.Close() }
