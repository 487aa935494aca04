package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/kambaz/internal/client/client"
	"github.com/dmitrijs2005/kambaz/internal/client/collection"
	"github.com/dmitrijs2005/kambaz/internal/client/models"
	"github.com/dmitrijs2005/kambaz/internal/client/session"
)

// fakeAPI is an in-memory Kambaz server.
type fakeAPI struct {
	mu          sync.Mutex
	users       []models.User
	courses     []models.Course
	enrollments map[string]map[string]bool
	modules     []models.Module
	assignments []models.Assignment
	me          string
	nextID      int

	fail       map[string]error
	calls      []string
	lastParams url.Values
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		users: []models.User{
			{ID: "1", Username: "iron_man", FirstName: "Tony", LastName: "Stark", Role: models.RoleFaculty},
			{ID: "2", Username: "dark_knight", FirstName: "Bruce", LastName: "Wayne", Role: models.RoleStudent, Section: "S101"},
			{ID: "3", Username: "admin", FirstName: "Ada", LastName: "Min", Role: models.RoleAdmin},
		},
		courses: []models.Course{
			{ID: "RS101", Name: "Rocket Propulsion", Credits: 4},
			{ID: "RS102", Name: "Aerodynamics", Credits: 3},
		},
		enrollments: map[string]map[string]bool{
			"1": {"RS101": true},
			"2": {"RS101": true, "RS102": true},
		},
		modules: []models.Module{
			{ID: "M101", Name: "Introduction", Course: "RS101"},
			{ID: "M102", Name: "Fuels", Course: "RS101"},
			{ID: "M201", Name: "Lift", Course: "RS102"},
		},
		assignments: []models.Assignment{
			{ID: "A101", Title: "Propulsion Assignment", Course: "RS101"},
			{ID: "A102", Title: "Combustion Analysis", Course: "RS101"},
		},
		me:     "1",
		nextID: 100,
		fail:   map[string]error{},
	}
}

func (f *fakeAPI) record(op string) error {
	f.calls = append(f.calls, op)
	if err, ok := f.fail[op]; ok {
		return err
	}
	return nil
}

func (f *fakeAPI) id() string {
	f.nextID++
	return fmt.Sprint(f.nextID)
}

func (f *fakeAPI) failOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = err
}

func (f *fakeAPI) called(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *fakeAPI) params() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastParams
}

// account

func (f *fakeAPI) SignIn(ctx context.Context, creds models.Credentials) (models.User, error) {
	return models.User{}, nil
}

func (f *fakeAPI) SignUp(ctx context.Context, user models.User) (models.User, error) {
	return user, nil
}

func (f *fakeAPI) Profile(ctx context.Context) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("profile"); err != nil {
		return models.User{}, err
	}
	for _, u := range f.users {
		if u.ID == f.me {
			return u, nil
		}
	}
	return models.User{}, unauthorized()
}

func (f *fakeAPI) SignOut(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record("signout")
}

// users

func (f *fakeAPI) FindAllUsers(ctx context.Context, params url.Values) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastParams = params
	if err := f.record("users.list"); err != nil {
		return nil, err
	}
	role, name := params.Get("role"), strings.ToLower(params.Get("name"))
	var out []models.User
	for _, u := range f.users {
		if role != "" && string(u.Role) != role {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(u.FullName()), name) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeAPI) FindUserByID(ctx context.Context, id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, notFound()
}

func (f *fakeAPI) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("users.create"); err != nil {
		return models.User{}, err
	}
	user.ID = f.id()
	user.Password = ""
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeAPI) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("users.update"); err != nil {
		return models.User{}, err
	}
	for i := range f.users {
		if f.users[i].ID == user.ID {
			user.Password = ""
			f.users[i] = user
			return user, nil
		}
	}
	return models.User{}, notFound()
}

func (f *fakeAPI) DeleteUser(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("users.delete"); err != nil {
		return err
	}
	kept := f.users[:0:0]
	for _, u := range f.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	f.users = kept
	delete(f.enrollments, id)
	return nil
}

// courses

func (f *fakeAPI) FetchAllCourses(ctx context.Context) ([]models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("courses.list"); err != nil {
		return nil, err
	}
	return append([]models.Course(nil), f.courses...), nil
}

func (f *fakeAPI) FindCourse(ctx context.Context, id string) (models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("courses.get"); err != nil {
		return models.Course{}, err
	}
	for _, c := range f.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Course{}, notFound()
}

func (f *fakeAPI) FindMyCourses(ctx context.Context) ([]models.Course, error) {
	return f.FindCoursesForUser(ctx, f.me)
}

func (f *fakeAPI) FindCoursesForUser(ctx context.Context, userID string) ([]models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("courses.mine"); err != nil {
		return nil, err
	}
	var out []models.Course
	for _, c := range f.courses {
		if f.enrollments[userID][c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateCourse(ctx context.Context, course models.Course) (models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("courses.create"); err != nil {
		return models.Course{}, err
	}
	course.ID = f.id()
	f.courses = append(f.courses, course)
	f.enroll(f.me, course.ID)
	return course, nil
}

func (f *fakeAPI) UpdateCourse(ctx context.Context, course models.Course) (models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("courses.update"); err != nil {
		return models.Course{}, err
	}
	for i := range f.courses {
		if f.courses[i].ID == course.ID {
			f.courses[i] = course
			return course, nil
		}
	}
	return models.Course{}, notFound()
}

func (f *fakeAPI) DeleteCourse(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("courses.delete"); err != nil {
		return err
	}
	kept := f.courses[:0:0]
	for _, c := range f.courses {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	f.courses = kept
	for _, cs := range f.enrollments {
		delete(cs, id)
	}
	return nil
}

func (f *fakeAPI) enroll(userID, courseID string) {
	if f.enrollments[userID] == nil {
		f.enrollments[userID] = map[string]bool{}
	}
	f.enrollments[userID][courseID] = true
}

func (f *fakeAPI) Enroll(ctx context.Context, userID, courseID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("enroll"); err != nil {
		return err
	}
	f.enroll(userID, courseID)
	return nil
}

func (f *fakeAPI) Unenroll(ctx context.Context, userID, courseID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("unenroll"); err != nil {
		return err
	}
	delete(f.enrollments[userID], courseID)
	return nil
}

func (f *fakeAPI) FindUsersForCourse(ctx context.Context, courseID string) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("roster"); err != nil {
		return nil, err
	}
	var out []models.User
	for _, u := range f.users {
		if f.enrollments[u.ID][courseID] {
			out = append(out, u)
		}
	}
	return out, nil
}

// modules

func (f *fakeAPI) FindModulesForCourse(ctx context.Context, courseID string) ([]models.Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("modules.list"); err != nil {
		return nil, err
	}
	var out []models.Module
	for _, m := range f.modules {
		if m.Course == courseID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateModule(ctx context.Context, courseID string, m models.Module) (models.Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("modules.create"); err != nil {
		return models.Module{}, err
	}
	m.ID = f.id()
	m.Course = courseID
	f.modules = append(f.modules, m)
	return m, nil
}

func (f *fakeAPI) UpdateModule(ctx context.Context, m models.Module) (models.Module, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("modules.update"); err != nil {
		return models.Module{}, err
	}
	for i := range f.modules {
		if f.modules[i].ID == m.ID {
			f.modules[i] = m
			return m, nil
		}
	}
	return models.Module{}, notFound()
}

func (f *fakeAPI) DeleteModule(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("modules.delete"); err != nil {
		return err
	}
	kept := f.modules[:0:0]
	for _, m := range f.modules {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	f.modules = kept
	return nil
}

// assignments

func (f *fakeAPI) FindAssignmentsForCourse(ctx context.Context, courseID string) ([]models.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("assignments.list"); err != nil {
		return nil, err
	}
	var out []models.Assignment
	for _, a := range f.assignments {
		if a.Course == courseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAPI) CreateAssignment(ctx context.Context, courseID string, a models.Assignment) (models.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("assignments.create"); err != nil {
		return models.Assignment{}, err
	}
	a.ID = f.id()
	a.Course = courseID
	f.assignments = append(f.assignments, a)
	return a, nil
}

func (f *fakeAPI) UpdateAssignment(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("assignments.update"); err != nil {
		return models.Assignment{}, err
	}
	for i := range f.assignments {
		if f.assignments[i].ID == a.ID {
			f.assignments[i] = a
			return a, nil
		}
	}
	return models.Assignment{}, notFound()
}

func (f *fakeAPI) DeleteAssignment(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("assignments.delete"); err != nil {
		return err
	}
	kept := f.assignments[:0:0]
	for _, a := range f.assignments {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	f.assignments = kept
	return nil
}

func (f *fakeAPI) Close() error { return nil }

var _ client.Client = (*fakeAPI)(nil)

func unauthorized() error {
	return &client.Error{Kind: client.KindAuth, Status: 401, Message: "Unauthorized"}
}

func notFound() error {
	return &client.Error{Kind: client.KindValidation, Status: 404, Message: "Not found"}
}

func serverDown() error {
	return &client.Error{Kind: client.KindNetwork, Err: fmt.Errorf("connection refused")}
}

// recorder collects notifications.
type recorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recorder) Notify(_ context.Context, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

// prompts answers every confirmation with answer and keeps the questions.
type prompts struct {
	answer bool
	asked  []string
}

func (p *prompts) Confirm(_ context.Context, prompt string) bool {
	p.asked = append(p.asked, prompt)
	return p.answer
}

// newEnv returns an Env whose session holds the user with id, or nobody
// when id is empty.
func newEnv(t *testing.T, api *fakeAPI, id string) (Env, *recorder, *prompts) {
	t.Helper()
	s := session.New(api, nil, nil)
	if id != "" {
		api.me = id
		s.Init(context.Background())
		if _, ok := s.Current(); !ok {
			t.Fatalf("user %s not found", id)
		}
	}
	rec := &recorder{}
	conf := &prompts{answer: true}
	return Env{Session: s, Notifier: rec, Confirmer: conf}, rec, conf
}

func userIDs(us []models.User) []string {
	out := make([]string, 0, len(us))
	for _, u := range us {
		out = append(out, u.ID)
	}
	return out
}

var _ collection.Notifier = (*recorder)(nil)
