package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/kambaz/internal/client/models"
)

// HTTPClient talks to the Kambaz API server at a fixed base URL.
type HTTPClient struct {
	rest
	baseURL string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for baseURL. Pass WithJar to keep the session
// cookie between calls.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	return &HTTPClient{
		rest:    buildRest("kambaz_client", opts),
		baseURL: baseURL,
	}
}

// BaseURL returns the server this client was built for.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) api(segments ...string) string {
	return joinURL(c.baseURL, append([]string{"api"}, segments...)...)
}

// ---------- account ----------

func (c *HTTPClient) SignIn(ctx context.Context, creds models.Credentials) (models.User, error) {
	var u models.User
	err := c.call(ctx, http.MethodPost, c.api("users", "signin"), nil, creds, &u)
	return u, err
}

func (c *HTTPClient) SignUp(ctx context.Context, user models.User) (models.User, error) {
	var u models.User
	err := c.call(ctx, http.MethodPost, c.api("users", "signup"), nil, user, &u)
	return u, err
}

func (c *HTTPClient) Profile(ctx context.Context) (models.User, error) {
	var u models.User
	err := c.call(ctx, http.MethodPost, c.api("users", "profile"), nil, nil, &u)
	return u, err
}

func (c *HTTPClient) SignOut(ctx context.Context) error {
	return c.call(ctx, http.MethodPost, c.api("users", "signout"), nil, nil, nil)
}

// ---------- users ----------

// FindAllUsers forwards params (role, name) verbatim as the query string.
func (c *HTTPClient) FindAllUsers(ctx context.Context, params url.Values) ([]models.User, error) {
	var users []models.User
	err := c.call(ctx, http.MethodGet, c.api("users"), params, nil, &users)
	return users, err
}

func (c *HTTPClient) FindUserByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := c.call(ctx, http.MethodGet, c.api("users", id), nil, nil, &u)
	return u, err
}

func (c *HTTPClient) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	var u models.User
	err := c.call(ctx, http.MethodPost, c.api("users"), nil, user, &u)
	return u, err
}

// UpdateUser returns the server's copy, or the sent user when the server
// replies without a body.
func (c *HTTPClient) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	var u models.User
	if err := c.call(ctx, http.MethodPut, c.api("users", user.ID), nil, user, &u); err != nil {
		return models.User{}, err
	}
	if u.ID == "" {
		return user, nil
	}
	return u, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, c.api("users", id), nil, nil, nil)
}

// ---------- courses ----------

func (c *HTTPClient) FetchAllCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := c.call(ctx, http.MethodGet, c.api("courses"), nil, nil, &courses)
	return courses, err
}

func (c *HTTPClient) FindCourse(ctx context.Context, id string) (models.Course, error) {
	var course models.Course
	err := c.call(ctx, http.MethodGet, c.api("courses", id), nil, nil, &course)
	return course, err
}

func (c *HTTPClient) FindMyCourses(ctx context.Context) ([]models.Course, error) {
	return c.FindCoursesForUser(ctx, "current")
}

func (c *HTTPClient) FindCoursesForUser(ctx context.Context, userID string) ([]models.Course, error) {
	var courses []models.Course
	err := c.call(ctx, http.MethodGet, c.api("users", userID, "courses"), nil, nil, &courses)
	return courses, err
}

// CreateCourse creates a course owned by (and enrolling) the signed-in user.
func (c *HTTPClient) CreateCourse(ctx context.Context, course models.Course) (models.Course, error) {
	var created models.Course
	err := c.call(ctx, http.MethodPost, c.api("users", "current", "courses"), nil, course, &created)
	return created, err
}

func (c *HTTPClient) UpdateCourse(ctx context.Context, course models.Course) (models.Course, error) {
	var updated models.Course
	if err := c.call(ctx, http.MethodPut, c.api("courses", course.ID), nil, course, &updated); err != nil {
		return models.Course{}, err
	}
	if updated.ID == "" {
		return course, nil
	}
	return updated, nil
}

func (c *HTTPClient) DeleteCourse(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, c.api("courses", id), nil, nil, nil)
}

func (c *HTTPClient) Enroll(ctx context.Context, userID, courseID string) error {
	return c.call(ctx, http.MethodPost, c.api("users", userID, "courses", courseID), nil, nil, nil)
}

func (c *HTTPClient) Unenroll(ctx context.Context, userID, courseID string) error {
	return c.call(ctx, http.MethodDelete, c.api("users", userID, "courses", courseID), nil, nil, nil)
}

func (c *HTTPClient) FindUsersForCourse(ctx context.Context, courseID string) ([]models.User, error) {
	var users []models.User
	err := c.call(ctx, http.MethodGet, c.api("courses", courseID, "users"), nil, nil, &users)
	return users, err
}

// ---------- modules ----------

func (c *HTTPClient) FindModulesForCourse(ctx context.Context, courseID string) ([]models.Module, error) {
	var modules []models.Module
	err := c.call(ctx, http.MethodGet, c.api("courses", courseID, "modules"), nil, nil, &modules)
	return modules, err
}

func (c *HTTPClient) CreateModule(ctx context.Context, courseID string, module models.Module) (models.Module, error) {
	var created models.Module
	err := c.call(ctx, http.MethodPost, c.api("courses", courseID, "modules"), nil, module, &created)
	return created, err
}

func (c *HTTPClient) UpdateModule(ctx context.Context, module models.Module) (models.Module, error) {
	var updated models.Module
	if err := c.call(ctx, http.MethodPut, c.api("modules", module.ID), nil, module, &updated); err != nil {
		return models.Module{}, err
	}
	if updated.ID == "" {
		return module, nil
	}
	return updated, nil
}

func (c *HTTPClient) DeleteModule(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, c.api("modules", id), nil, nil, nil)
}

// ---------- assignments ----------

func (c *HTTPClient) FindAssignmentsForCourse(ctx context.Context, courseID string) ([]models.Assignment, error) {
	var list []models.Assignment
	err := c.call(ctx, http.MethodGet, c.api("courses", courseID, "assignments"), nil, nil, &list)
	return list, err
}

func (c *HTTPClient) CreateAssignment(ctx context.Context, courseID string, a models.Assignment) (models.Assignment, error) {
	var created models.Assignment
	err := c.call(ctx, http.MethodPost, c.api("courses", courseID, "assignments"), nil, a, &created)
	return created, err
}

func (c *HTTPClient) UpdateAssignment(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	var updated models.Assignment
	if err := c.call(ctx, http.MethodPut, c.api("assignments", a.ID), nil, a, &updated); err != nil {
		return models.Assignment{}, err
	}
	if updated.ID == "" {
		return a, nil
	}
	return updated, nil
}

func (c *HTTPClient) DeleteAssignment(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, c.api("assignments", id), nil, nil, nil)
}
