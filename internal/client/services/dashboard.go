package services

import (
	"context"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/kambaz/internal/client/client"
	"github.com/dmitrijs2005/kambaz/internal/client/collection"
	"github.com/dmitrijs2005/kambaz/internal/client/models"
)

// Dashboard shows every course and the ones the user is enrolled in.
type Dashboard struct {
	env  Env
	api  client.CoursesAPI
	all  *collection.Collection[models.Course]
	mine *collection.Collection[models.Course]

	mu           sync.Mutex
	enrolledOnly bool
}

var _ Screen = (*Dashboard)(nil)

func NewDashboard(env Env, api client.CoursesAPI) *Dashboard {
	all := collection.RemoteFuncs[models.Course]{
		ListFunc: func(ctx context.Context, _ url.Values) ([]models.Course, error) {
			return api.FetchAllCourses(ctx)
		},
		CreateFunc: api.CreateCourse,
		UpdateFunc: func(ctx context.Context, id string, c models.Course) (models.Course, error) {
			c.ID = id
			return api.UpdateCourse(ctx, c)
		},
		DeleteFunc: api.DeleteCourse,
	}
	mine := collection.RemoteFuncs[models.Course]{
		ListFunc: func(ctx context.Context, _ url.Values) ([]models.Course, error) {
			return api.FindMyCourses(ctx)
		},
	}
	opts := env.collectionOptions()
	return &Dashboard{
		env:  env,
		api:  api,
		all:  collection.New[models.Course]("course", all, opts...),
		mine: collection.New[models.Course]("enrollment", mine, opts...),
	}
}

func (d *Dashboard) Name() string { return "courses" }

// Load fetches all courses and, when someone is signed in, their courses.
func (d *Dashboard) Load(ctx context.Context) error {
	if _, err := d.all.Load(ctx, nil); err != nil {
		return err
	}
	if _, err := d.env.require(); err != nil {
		return nil
	}
	_, err := d.mine.Load(ctx, nil)
	return err
}

// ToggleEnrolledOnly flips between all courses and enrolled courses and
// returns the new setting.
func (d *Dashboard) ToggleEnrolledOnly() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enrolledOnly = !d.enrolledOnly
	return d.enrolledOnly
}

func (d *Dashboard) EnrolledOnly() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enrolledOnly
}

// Courses returns the list currently shown, narrowed by filters. The
// enrolled-only view is the full list restricted to the user's course ids.
func (d *Dashboard) Courses(filters ...collection.Filter[models.Course]) []models.Course {
	if d.EnrolledOnly() {
		ids := make(map[string]struct{}, d.mine.Len())
		for _, c := range d.mine.Items() {
			ids[c.ID] = struct{}{}
		}
		filters = append([]collection.Filter[models.Course]{collection.IDIn[models.Course](ids)}, filters...)
	}
	return d.all.Visible(filters...)
}

// IsEnrolled reports whether courseID is among the user's courses.
func (d *Dashboard) IsEnrolled(courseID string) bool {
	_, ok := d.mine.Get(courseID)
	return ok
}

func (d *Dashboard) Select(id string) (models.Course, error) {
	if err := d.all.Select(id); err != nil {
		return models.Course{}, err
	}
	c, _ := d.all.Selected()
	return c, nil
}

// AddCourse creates a course owned by the signed-in user, who is enrolled in
// it by the server.
func (d *Dashboard) AddCourse(ctx context.Context, draft models.CourseDraft) (models.Course, error) {
	if _, err := d.env.require(); err != nil {
		return models.Course{}, err
	}
	if err := validate(draft); err != nil {
		d.env.notify(ctx, err)
		return models.Course{}, err
	}
	created, err := d.all.Create(ctx, draft.Course())
	if err != nil {
		return created, err
	}
	d.reloadMine(ctx)
	return created, nil
}

// UpdateCourse replaces a course. Faculty and administrators only.
func (d *Dashboard) UpdateCourse(ctx context.Context, course models.Course) (models.Course, error) {
	if _, err := d.env.require(manageRoles...); err != nil {
		return models.Course{}, err
	}
	if err := validate(models.CourseDraft{Name: course.Name, Credits: course.Credits}); err != nil {
		d.env.notify(ctx, err)
		return models.Course{}, err
	}
	updated, err := d.all.Update(ctx, course.ID, course)
	if err != nil {
		return updated, err
	}
	d.reloadMine(ctx)
	return updated, nil
}

// DeleteCourse removes a course after confirmation. Faculty and
// administrators only.
func (d *Dashboard) DeleteCourse(ctx context.Context, id string) error {
	if _, err := d.env.require(manageRoles...); err != nil {
		return err
	}
	if err := d.all.Delete(ctx, id); err != nil {
		return err
	}
	d.reloadMine(ctx)
	return nil
}

// Enroll adds the signed-in user to courseID.
func (d *Dashboard) Enroll(ctx context.Context, courseID string) error {
	u, err := d.env.require()
	if err != nil {
		return err
	}
	if err := d.api.Enroll(ctx, u.ID, courseID); err != nil {
		d.env.logger().Error(ctx, "enroll failed", "course", courseID, "error", err)
		d.env.notify(ctx, err)
		return err
	}
	d.reloadMine(ctx)
	return nil
}

// Unenroll removes the signed-in user from courseID.
func (d *Dashboard) Unenroll(ctx context.Context, courseID string) error {
	u, err := d.env.require()
	if err != nil {
		return err
	}
	if err := d.api.Unenroll(ctx, u.ID, courseID); err != nil {
		d.env.logger().Error(ctx, "unenroll failed", "course", courseID, "error", err)
		d.env.notify(ctx, err)
		return err
	}
	d.reloadMine(ctx)
	return nil
}

func (d *Dashboard) reloadMine(ctx context.Context) {
	if _, err := d.mine.Reload(ctx); err != nil {
		d.env.logger().Warn(ctx, "reloading enrollments failed", "error", err)
	}
}

func (d *Dashboard) Close() {
	d.all.Close()
	d.mine.Close()
}
