package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/kambaz/internal/client/client"
	"github.com/dmitrijs2005/kambaz/internal/client/collection"
	"github.com/dmitrijs2005/kambaz/internal/client/models"
)

// LabScreen drives the lab server: a welcome message, one assignment object
// and a todo list. The lab server never sees the session cookie.
type LabScreen struct {
	env   Env
	api   client.LabAPI
	todos *collection.Collection[models.Todo]

	mu         sync.Mutex
	assignment models.LabAssignment
}

var _ Screen = (*LabScreen)(nil)

func NewLabScreen(env Env, api client.LabAPI) *LabScreen {
	remote := collection.RemoteFuncs[models.Todo]{
		ListFunc: func(ctx context.Context, _ url.Values) ([]models.Todo, error) {
			return api.FetchTodos(ctx)
		},
		CreateFunc: api.PostTodo,
		UpdateFunc: func(ctx context.Context, id string, t models.Todo) (models.Todo, error) {
			n, err := parseTodoID(id)
			if err != nil {
				return models.Todo{}, err
			}
			t.ID = n
			if err := api.UpdateTodo(ctx, t); err != nil {
				return models.Todo{}, err
			}
			return t, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			n, err := parseTodoID(id)
			if err != nil {
				return err
			}
			return api.DeleteTodo(ctx, n)
		},
	}
	return &LabScreen{
		env:   env,
		api:   api,
		todos: collection.New[models.Todo]("todo", remote, env.collectionOptions()...),
	}
}

func parseTodoID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("todo id %q: %w", id, collection.ErrNotFoundLocally)
	}
	return n, nil
}

func (s *LabScreen) Name() string { return "lab" }

// Load fetches the assignment and the todos.
func (s *LabScreen) Load(ctx context.Context) error {
	if _, err := s.FetchAssignment(ctx); err != nil {
		return err
	}
	_, err := s.todos.Load(ctx, nil)
	return err
}

func (s *LabScreen) Welcome(ctx context.Context) (string, error) {
	msg, err := s.api.WelcomeMessage(ctx)
	if err != nil {
		s.env.logger().Error(ctx, "welcome fetch failed", "error", err)
		return "", err
	}
	return msg, nil
}

func (s *LabScreen) FetchAssignment(ctx context.Context) (models.LabAssignment, error) {
	a, err := s.api.FetchAssignment(ctx)
	if err != nil {
		s.env.logger().Error(ctx, "lab assignment fetch failed", "error", err)
		return models.LabAssignment{}, err
	}
	s.setAssignment(a)
	return a, nil
}

// Assignment returns the last assignment fetched or updated.
func (s *LabScreen) Assignment() models.LabAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assignment
}

func (s *LabScreen) setAssignment(a models.LabAssignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignment = a
}

// SetAssignmentTitle renames the lab assignment.
func (s *LabScreen) SetAssignmentTitle(ctx context.Context, title string) (models.LabAssignment, error) {
	title = strings.TrimSpace(title)
	if err := validate(models.TodoDraft{Title: title}); err != nil {
		s.env.notify(ctx, err)
		return models.LabAssignment{}, err
	}
	a, err := s.api.UpdateAssignmentTitle(ctx, title)
	if err != nil {
		s.env.logger().Error(ctx, "lab assignment update failed", "error", err)
		s.env.notify(ctx, err)
		return models.LabAssignment{}, err
	}
	s.setAssignment(a)
	return a, nil
}

func (s *LabScreen) Todos() []models.Todo { return s.todos.Items() }

// AddTodo posts a new todo.
func (s *LabScreen) AddTodo(ctx context.Context, draft models.TodoDraft) (models.Todo, error) {
	if err := validate(draft); err != nil {
		s.env.notify(ctx, err)
		return models.Todo{}, err
	}
	return s.todos.Create(ctx, draft.Todo())
}

// RetitleTodo sets the title of a listed todo.
func (s *LabScreen) RetitleTodo(ctx context.Context, id, title string) (models.Todo, error) {
	title = strings.TrimSpace(title)
	if err := validate(models.TodoDraft{Title: title}); err != nil {
		s.env.notify(ctx, err)
		return models.Todo{}, err
	}
	return s.todos.Edit(ctx, id, func(t *models.Todo) { t.Title = title })
}

// ToggleTodo flips the completed flag of a listed todo.
func (s *LabScreen) ToggleTodo(ctx context.Context, id string) (models.Todo, error) {
	return s.todos.Edit(ctx, id, func(t *models.Todo) { t.Completed = !t.Completed })
}

// DeleteTodo removes a listed todo once the user confirms.
func (s *LabScreen) DeleteTodo(ctx context.Context, id string) error {
	t, ok := s.todos.Get(id)
	if !ok {
		return fmt.Errorf("todo %s: %w", id, collection.ErrNotFoundLocally)
	}
	return s.todos.DeleteWithPrompt(ctx, id, fmt.Sprintf("Delete todo %q?", t.Title))
}

// CreateTodoLegacy uses the GET-style creator and then refetches the list.
func (s *LabScreen) CreateTodoLegacy(ctx context.Context) ([]models.Todo, error) {
	if _, err := s.api.CreateTodo(ctx); err != nil {
		s.env.logger().Error(ctx, "legacy todo create failed", "error", err)
		s.env.notify(ctx, err)
		return s.todos.Items(), err
	}
	return s.todos.Reload(ctx)
}

// RemoveTodoLegacy uses the GET-style remover and then refetches the list.
func (s *LabScreen) RemoveTodoLegacy(ctx context.Context, id string) ([]models.Todo, error) {
	n, err := parseTodoID(id)
	if err != nil {
		return s.todos.Items(), err
	}
	if _, err := s.api.RemoveTodo(ctx, n); err != nil {
		s.env.logger().Error(ctx, "legacy todo remove failed", "id", id, "error", err)
		s.env.notify(ctx, err)
		return s.todos.Items(), err
	}
	return s.todos.Reload(ctx)
}

func (s *LabScreen) Close() { s.todos.Close() }
