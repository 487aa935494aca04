package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/kambaz/internal/client/collection"
	"github.com/dmitrijs2005/kambaz/internal/client/models"
	"github.com/dmitrijs2005/kambaz/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func courseIDs(cs []models.Course) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func loadedDashboard(t *testing.T, userID string) (*Dashboard, *fakeAPI, *recorder) {
	t.Helper()
	api := newFakeAPI()
	env, rec, _ := newEnv(t, api, userID)
	d := NewDashboard(env, api)
	t.Cleanup(d.Close)
	require.NoError(t, d.Load(context.Background()))
	return d, api, rec
}

func TestDashboard_LoadAndToggle(t *testing.T) {
	d, _, _ := loadedDashboard(t, "1")

	assert.Equal(t, "courses", d.Name())
	assert.Equal(t, []string{"RS101", "RS102"}, courseIDs(d.Courses()))
	assert.True(t, d.IsEnrolled("RS101"))
	assert.False(t, d.IsEnrolled("RS102"))

	assert.True(t, d.ToggleEnrolledOnly())
	assert.Equal(t, []string{"RS101"}, courseIDs(d.Courses()))
	assert.False(t, d.ToggleEnrolledOnly())

	assert.Equal(t, []string{"RS102"}, courseIDs(d.Courses(collection.CourseNameContains("aero"))))
}

func TestDashboard_SignedOutSkipsEnrollments(t *testing.T) {
	d, api, _ := loadedDashboard(t, "")

	assert.Len(t, d.Courses(), 2)
	assert.Equal(t, 0, api.called("courses.mine"))

	require.ErrorIs(t, d.Enroll(context.Background(), "RS102"), session.ErrNotSignedIn)
	assert.Equal(t, 0, api.called("enroll"))
}

func TestDashboard_EnrollReloadsMyCourses(t *testing.T) {
	d, api, _ := loadedDashboard(t, "1")
	ctx := context.Background()

	require.NoError(t, d.Enroll(ctx, "RS102"))
	assert.True(t, d.IsEnrolled("RS102"))
	assert.Equal(t, 2, api.called("courses.mine"))

	require.NoError(t, d.Unenroll(ctx, "RS101"))
	assert.False(t, d.IsEnrolled("RS101"))
}

func TestDashboard_EnrollFailureNotifies(t *testing.T) {
	d, api, rec := loadedDashboard(t, "1")
	api.failOn("enroll", serverDown())

	require.Error(t, d.Enroll(context.Background(), "RS102"))
	assert.False(t, d.IsEnrolled("RS102"))
	require.Len(t, rec.messages(), 1)
	assert.Contains(t, rec.messages()[0], "Network error")
}

func TestDashboard_AddCourse(t *testing.T) {
	d, api, _ := loadedDashboard(t, "2")
	ctx := context.Background()

	_, err := d.AddCourse(ctx, models.CourseDraft{Credits: 3})
	require.ErrorIs(t, err, models.ErrInvalidDraft)
	assert.Equal(t, 0, api.called("courses.create"))

	c, err := d.AddCourse(ctx, models.CourseDraft{Name: "Orbital Mechanics", Credits: 3})
	require.NoError(t, err)
	assert.Contains(t, courseIDs(d.Courses()), c.ID)
	assert.True(t, d.IsEnrolled(c.ID))
}

func TestDashboard_ManageNeedsFacultyOrAdmin(t *testing.T) {
	d, api, _ := loadedDashboard(t, "2")
	ctx := context.Background()

	_, err := d.UpdateCourse(ctx, models.Course{ID: "RS101", Name: "x"})
	require.ErrorIs(t, err, session.ErrForbidden)
	require.ErrorIs(t, d.DeleteCourse(ctx, "RS101"), session.ErrForbidden)
	assert.Equal(t, 0, api.called("courses.update")+api.called("courses.delete"))
}

func TestDashboard_UpdateAndDeleteCourse(t *testing.T) {
	d, api, _ := loadedDashboard(t, "1")
	ctx := context.Background()

	updated, err := d.UpdateCourse(ctx, models.Course{ID: "RS101", Name: "Advanced Propulsion", Credits: 5})
	require.NoError(t, err)
	assert.Equal(t, "Advanced Propulsion", updated.Name)
	assert.Equal(t, "Advanced Propulsion", d.Courses()[0].Name)

	d.ToggleEnrolledOnly()
	assert.Equal(t, "Advanced Propulsion", d.Courses()[0].Name)
	d.ToggleEnrolledOnly()

	require.NoError(t, d.DeleteCourse(ctx, "RS101"))
	assert.Equal(t, []string{"RS102"}, courseIDs(d.Courses()))
	assert.False(t, d.IsEnrolled("RS101"))
	assert.Equal(t, 1, api.called("courses.delete"))
}
