package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/kambaz/internal/client/models"
)

// LabClient talks to the lab endpoints. It never sends credentials.
type LabClient struct {
	rest
	baseURL       string
	assignmentAPI string
	todosAPI      string
}

var _ LabAPI = (*LabClient)(nil)

// NewLabClient builds a lab client for baseURL. Empty assignmentAPI or
// todosAPI default to /lab5/assignment and /lab5/todos under baseURL. Any
// WithJar option is ignored.
func NewLabClient(baseURL, assignmentAPI, todosAPI string, opts ...Option) *LabClient {
	r := buildRest("lab_client", opts)
	r.httpClient.Jar = nil

	if assignmentAPI == "" {
		assignmentAPI = joinURL(baseURL, "lab5", "assignment")
	}
	if todosAPI == "" {
		todosAPI = joinURL(baseURL, "lab5", "todos")
	}
	return &LabClient{rest: r, baseURL: baseURL, assignmentAPI: assignmentAPI, todosAPI: todosAPI}
}

func (c *LabClient) lab(segments ...string) string {
	return joinURL(c.baseURL, append([]string{"lab5"}, segments...)...)
}

func (c *LabClient) WelcomeMessage(ctx context.Context) (string, error) {
	var msg string
	err := c.call(ctx, http.MethodGet, c.lab("welcome"), nil, nil, &msg)
	return msg, err
}

func (c *LabClient) FetchAssignment(ctx context.Context) (models.LabAssignment, error) {
	var a models.LabAssignment
	err := c.call(ctx, http.MethodGet, c.assignmentAPI, nil, nil, &a)
	return a, err
}

// UpdateAssignmentTitle uses the lab server's GET-style setter.
func (c *LabClient) UpdateAssignmentTitle(ctx context.Context, title string) (models.LabAssignment, error) {
	var a models.LabAssignment
	err := c.call(ctx, http.MethodGet, c.lab("assignment", "title", title), nil, nil, &a)
	return a, err
}

func (c *LabClient) FetchTodos(ctx context.Context) ([]models.Todo, error) {
	var todos []models.Todo
	err := c.call(ctx, http.MethodGet, c.todosAPI, nil, nil, &todos)
	return todos, err
}

// CreateTodo uses the GET-style creator, which returns the whole list.
func (c *LabClient) CreateTodo(ctx context.Context) ([]models.Todo, error) {
	var todos []models.Todo
	err := c.call(ctx, http.MethodGet, c.lab("todos", "create"), nil, nil, &todos)
	return todos, err
}

func (c *LabClient) PostTodo(ctx context.Context, todo models.Todo) (models.Todo, error) {
	var created models.Todo
	err := c.call(ctx, http.MethodPost, c.todosAPI, nil, todo, &created)
	return created, err
}

func (c *LabClient) UpdateTodo(ctx context.Context, todo models.Todo) error {
	return c.call(ctx, http.MethodPut, c.lab("todos", strconv.FormatInt(todo.ID, 10)), nil, todo, nil)
}

// RemoveTodo uses the GET-style remover, which returns the remaining list.
func (c *LabClient) RemoveTodo(ctx context.Context, id int64) ([]models.Todo, error) {
	var todos []models.Todo
	err := c.call(ctx, http.MethodGet, c.lab("todos", strconv.FormatInt(id, 10), "delete"), nil, nil, &todos)
	return todos, err
}

func (c *LabClient) DeleteTodo(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, c.lab("todos", strconv.FormatInt(id, 10)), nil, nil, nil)
}
