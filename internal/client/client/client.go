package client

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/kambaz/internal/client/models"
)

// AccountAPI covers sign-in, sign-up, profile and sign-out.
type AccountAPI interface {
	SignIn(ctx context.Context, creds models.Credentials) (models.User, error)
	SignUp(ctx context.Context, user models.User) (models.User, error)
	Profile(ctx context.Context) (models.User, error)
	SignOut(ctx context.Context) error
}

// UsersAPI is the user administration surface.
type UsersAPI interface {
	FindAllUsers(ctx context.Context, params url.Values) ([]models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// CoursesAPI covers the course catalog, enrollments and course rosters.
type CoursesAPI interface {
	FetchAllCourses(ctx context.Context) ([]models.Course, error)
	FindCourse(ctx context.Context, id string) (models.Course, error)
	FindMyCourses(ctx context.Context) ([]models.Course, error)
	FindCoursesForUser(ctx context.Context, userID string) ([]models.Course, error)
	CreateCourse(ctx context.Context, course models.Course) (models.Course, error)
	UpdateCourse(ctx context.Context, course models.Course) (models.Course, error)
	DeleteCourse(ctx context.Context, id string) error
	Enroll(ctx context.Context, userID, courseID string) error
	Unenroll(ctx context.Context, userID, courseID string) error
	FindUsersForCourse(ctx context.Context, courseID string) ([]models.User, error)
}

type ModulesAPI interface {
	FindModulesForCourse(ctx context.Context, courseID string) ([]models.Module, error)
	CreateModule(ctx context.Context, courseID string, module models.Module) (models.Module, error)
	UpdateModule(ctx context.Context, module models.Module) (models.Module, error)
	DeleteModule(ctx context.Context, id string) error
}

type AssignmentsAPI interface {
	FindAssignmentsForCourse(ctx context.Context, courseID string) ([]models.Assignment, error)
	CreateAssignment(ctx context.Context, courseID string, a models.Assignment) (models.Assignment, error)
	UpdateAssignment(ctx context.Context, a models.Assignment) (models.Assignment, error)
	DeleteAssignment(ctx context.Context, id string) error
}

// Client is the full Kambaz API used by the CLI. Every call carries the
// session cookie.
type Client interface {
	AccountAPI
	UsersAPI
	CoursesAPI
	ModulesAPI
	AssignmentsAPI
	Close() error
}

// LabAPI is the credential-free lab server.
type LabAPI interface {
	WelcomeMessage(ctx context.Context) (string, error)
	FetchAssignment(ctx context.Context) (models.LabAssignment, error)
	UpdateAssignmentTitle(ctx context.Context, title string) (models.LabAssignment, error)
	FetchTodos(ctx context.Context) ([]models.Todo, error)
	CreateTodo(ctx context.Context) ([]models.Todo, error)
	PostTodo(ctx context.Context, todo models.Todo) (models.Todo, error)
	UpdateTodo(ctx context.Context, todo models.Todo) error
	RemoveTodo(ctx context.Context, id int64) ([]models.Todo, error)
	DeleteTodo(ctx context.Context, id int64) error
}
