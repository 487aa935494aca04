package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/kambaz/internal/client/client"
	"github.com/dmitrijs2005/kambaz/internal/client/collection"
	"github.com/dmitrijs2005/kambaz/internal/client/models"
	"github.com/dmitrijs2005/kambaz/internal/client/services"
	"github.com/dmitrijs2005/kambaz/internal/client/session"
	"github.com/dmitrijs2005/kambaz/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNoSuchCommand = errors.New("not available on this screen")

// report shows the outcome of a failed command. Failed mutations have
// already been shown by the screen's notifier, so they are only logged here.
func (a *App) report(ctx context.Context, err error) {
	switch {
	case err == nil:
		return
	case session.IsSignInRequired(err):
		a.unmount()
		a.println("You need to sign in first (type 'signin').")
	case errors.Is(err, session.ErrForbidden):
		a.println("You are not allowed to do that.")
	case errors.Is(err, collection.ErrCancelled):
		a.println("Cancelled.")
	case errors.Is(err, collection.ErrNotFoundLocally):
		a.println("Not found:", err)
	case errors.Is(err, errNoSuchCommand):
		a.println(err)
	default:
		args := []any{"screen", a.screenName(), "error", err}
		if kind, ok := client.KindOf(err); ok {
			args = append(args, "kind", kind.String())
		}
		a.logger.Debug(ctx, "command failed", args...)
	}
}

// loadFailed prints a failed fetch, which no notifier has shown. Auth
// failures are returned so report can redirect to sign-in.
func (a *App) loadFailed(err error) error {
	if session.IsSignInRequired(err) {
		return err
	}
	a.println(client.Describe(err))
	return nil
}

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

// ---------- account ----------

func (a *App) SignIn(ctx context.Context) error {
	username, err := a.ask("Username")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.session.SignIn(ctx, models.Credentials{Username: username, Password: string(password)})
	if err != nil {
		a.println("Sign in failed:", client.Describe(err))
		return nil
	}
	a.printf("Signed in as %s (%s)\n", u.Username, u.Role)
	return a.Open(ctx, "courses", nil)
}

func (a *App) SignUp(ctx context.Context) error {
	username, err := a.ask("Username")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	verify, err := getPassword(a.out, "Verify password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(verify)
	first, err := a.ask("First name (optional)")
	if err != nil {
		return err
	}
	last, err := a.ask("Last name (optional)")
	if err != nil {
		return err
	}
	email, err := a.ask("Email (optional)")
	if err != nil {
		return err
	}

	u, err := a.session.SignUp(ctx, models.SignUp{
		Username:       username,
		Password:       string(password),
		VerifyPassword: string(verify),
		FirstName:      first,
		LastName:       last,
		Email:          email,
	})
	if err != nil {
		a.println("Sign up failed:", client.Describe(err))
		return nil
	}
	a.printf("Welcome, %s!\n", u.Username)
	return a.Open(ctx, "profile", nil)
}

func (a *App) SignOut(ctx context.Context) error {
	if !a.isSignedIn() {
		a.println("Not signed in.")
		return nil
	}
	if err := a.session.SignOut(ctx); err != nil {
		a.println("Sign out failed:", client.Describe(err))
		return nil
	}
	a.unmount()
	a.println("Signed out.")
	return nil
}

// ---------- screens ----------

// Open mounts a screen, discarding the previous one, and shows its rows.
func (a *App) Open(ctx context.Context, name string, args []string) error {
	env := a.env(ctx)
	var (
		s   services.Screen
		err error
	)

	needCourse := func() (string, bool) {
		if len(args) == 0 {
			a.printf("Usage: %s <course id>\n", name)
			return "", false
		}
		return args[0], true
	}

	switch name {
	case "users":
		s, err = services.NewUsersScreen(env, a.api)
	case "courses":
		s = services.NewDashboard(env, a.api)
	case "modules":
		cid, ok := needCourse()
		if !ok {
			return nil
		}
		s = services.NewModulesScreen(env, a.api, a.api, cid)
	case "people":
		cid, ok := needCourse()
		if !ok {
			return nil
		}
		s = services.NewPeopleScreen(env, a.api, a.api, cid)
	case "assignments":
		cid, ok := needCourse()
		if !ok {
			return nil
		}
		s = services.NewAssignmentsScreen(env, a.api, cid)
	case "profile":
		if _, ok := env.Session.Current(); !ok {
			return session.ErrNotSignedIn
		}
		s = services.NewProfileScreen(env, a.api)
	case "lab":
		lab := services.NewLabScreen(env, a.lab)
		if msg, werr := lab.Welcome(ctx); werr == nil {
			a.println(msg)
		}
		s = lab
	default:
		return fmt.Errorf("%s: %w", name, errNoSuchCommand)
	}
	if err != nil {
		return err
	}

	a.mount(s)
	if err := s.Load(ctx); err != nil {
		if err := a.loadFailed(err); err != nil {
			return err
		}
	}
	return a.List(ctx)
}

func (a *App) List(ctx context.Context) error {
	a.render(a.current())
	return nil
}

func (a *App) Reload(ctx context.Context) error {
	s := a.current()
	if s == nil {
		return nil
	}
	if err := s.Load(ctx); err != nil {
		return a.loadFailed(err)
	}
	a.render(s)
	return nil
}

func (a *App) Filter(ctx context.Context, key, value string) error {
	key = strings.ToLower(key)
	switch s := a.current().(type) {
	case *services.UsersScreen:
		switch key {
		case "role":
			role, ok := parseRoleArg(value)
			if !ok {
				a.printf("Unknown role %q\n", value)
				return nil
			}
			s.FilterByRole(role)
		case "name":
			s.FilterByName(value)
		default:
			a.println("Filter by role or name.")
			return nil
		}
	case *services.PeopleScreen:
		switch key {
		case "role":
			role, ok := parseRoleArg(value)
			if !ok {
				a.printf("Unknown role %q\n", value)
				return nil
			}
			s.FilterByRole(role)
		case "name", "search":
			s.Search(value)
		default:
			a.println("Filter by role or search.")
			return nil
		}
	case *services.Dashboard, *services.ModulesScreen, *services.AssignmentsScreen:
		a.mu.Lock()
		a.search = value
		a.mu.Unlock()
	default:
		return fmt.Errorf("filter: %w", errNoSuchCommand)
	}
	return a.List(ctx)
}

// parseRoleArg accepts a role name, or "all" and "" for no filter.
func parseRoleArg(v string) (models.Role, bool) {
	if v == "" || strings.EqualFold(v, "all") {
		return "", true
	}
	return models.ParseRole(v)
}

func (a *App) Clear(ctx context.Context) error {
	switch s := a.current().(type) {
	case *services.UsersScreen:
		s.ClearFilters()
	case *services.PeopleScreen:
		s.ClearFilters()
	}
	a.mu.Lock()
	a.search = ""
	a.mu.Unlock()
	return a.List(ctx)
}

func (a *App) Select(ctx context.Context, id string) error {
	switch s := a.current().(type) {
	case *services.UsersScreen:
		u, err := s.Select(id)
		if err != nil {
			return err
		}
		a.renderUser(u)
	case *services.PeopleScreen:
		u, err := s.Select(id)
		if err != nil {
			return err
		}
		a.renderUser(u)
	case *services.Dashboard:
		c, err := s.Select(id)
		if err != nil {
			return err
		}
		a.renderCourse(c, s.IsEnrolled(c.ID))
	case *services.ModulesScreen:
		m, err := s.Select(id)
		if err != nil {
			return err
		}
		a.renderModule(m)
	case *services.AssignmentsScreen:
		as, err := s.Select(id)
		if err != nil {
			return err
		}
		a.renderAssignment(as)
	default:
		return fmt.Errorf("select: %w", errNoSuchCommand)
	}
	return nil
}

func (a *App) Add(ctx context.Context) error {
	var err error
	switch s := a.current().(type) {
	case *services.UsersScreen:
		err = a.addUser(ctx, s)
	case *services.Dashboard:
		err = a.addCourse(ctx, s)
	case *services.ModulesScreen:
		name, aerr := a.ask("Module name")
		if aerr != nil {
			return aerr
		}
		_, err = s.Add(ctx, name)
	case *services.AssignmentsScreen:
		err = a.addAssignment(ctx, s)
	case *services.LabScreen:
		title, aerr := a.ask("Todo title (empty for the server's default todo)")
		if aerr != nil {
			return aerr
		}
		if title == "" {
			_, err = s.CreateTodoLegacy(ctx)
		} else {
			_, err = s.AddTodo(ctx, models.TodoDraft{Title: title})
		}
	default:
		return fmt.Errorf("add: %w", errNoSuchCommand)
	}
	if err != nil {
		return err
	}
	return a.List(ctx)
}

func (a *App) addUser(ctx context.Context, s *services.UsersScreen) error {
	username, err := a.ask("Username")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	first, _ := a.ask("First name")
	last, _ := a.ask("Last name")
	email, _ := a.ask("Email (optional)")
	roleText, _ := a.ask("Role (STUDENT, FACULTY, ADMIN, TA)")
	role, ok := parseRoleArg(roleText)
	if !ok {
		role = models.Role(strings.ToUpper(roleText))
	}

	_, err = s.Add(ctx, models.NewUser{
		Username:  username,
		Password:  string(password),
		FirstName: first,
		LastName:  last,
		Email:     email,
		Role:      role,
	})
	return err
}

func (a *App) addCourse(ctx context.Context, s *services.Dashboard) error {
	name, err := a.ask("Course name")
	if err != nil {
		return err
	}
	number, _ := a.ask("Number")
	department, _ := a.ask("Department")
	credits, err := a.askInt("Credits")
	if err != nil {
		return err
	}
	description, _ := GetMultiline(a.reader, "Description", a.out)

	_, err = s.AddCourse(ctx, models.CourseDraft{
		Name:        name,
		Number:      number,
		Department:  department,
		Credits:     credits,
		Description: description,
	})
	return err
}

func (a *App) addAssignment(ctx context.Context, s *services.AssignmentsScreen) error {
	title, err := a.ask("Title")
	if err != nil {
		return err
	}
	points, err := a.askInt("Points")
	if err != nil {
		return err
	}
	due, _ := a.ask("Due (e.g. 2026-05-06T23:59)")
	_, err = s.Add(ctx, title, points, due)
	return err
}

// askInt reads a whole number; an empty answer is zero.
func (a *App) askInt(prompt string) (int, error) {
	for {
		v, err := a.ask(prompt)
		if err != nil {
			return 0, err
		}
		if v == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(v)
		if err == nil {
			return n, nil
		}
		a.println("Please enter a number.")
	}
}

func (a *App) Edit(ctx context.Context, id string) error {
	var err error
	switch s := a.current().(type) {
	case *services.UsersScreen:
		err = a.editUser(ctx, s, id)
	case *services.PeopleScreen:
		first, _ := a.ask("First name")
		last, _ := a.ask("Last name")
		_, err = s.Rename(ctx, id, first, last)
	case *services.Dashboard:
		course, serr := s.Select(id)
		if serr != nil {
			return serr
		}
		if name, _ := a.ask(fmt.Sprintf("Name [%s]", course.Name)); name != "" {
			course.Name = name
		}
		if desc, _ := a.ask("Description (empty keeps it)"); desc != "" {
			course.Description = desc
		}
		_, err = s.UpdateCourse(ctx, course)
	case *services.ModulesScreen:
		name, aerr := a.ask("New name")
		if aerr != nil {
			return aerr
		}
		_, err = s.Rename(ctx, id, name)
	case *services.AssignmentsScreen:
		title, aerr := a.ask("New title")
		if aerr != nil {
			return aerr
		}
		_, err = s.Retitle(ctx, id, title)
	case *services.ProfileScreen:
		err = a.editProfile(ctx, s)
	case *services.LabScreen:
		err = a.editLab(ctx, s, id)
	default:
		return fmt.Errorf("edit: %w", errNoSuchCommand)
	}
	if err != nil {
		return err
	}
	return a.List(ctx)
}

func (a *App) editUser(ctx context.Context, s *services.UsersScreen, id string) error {
	first, _ := a.ask("First name")
	last, _ := a.ask("Last name")
	if first != "" || last != "" {
		if _, err := s.Rename(ctx, id, first, last); err != nil {
			return err
		}
	}
	roleText, _ := a.ask("Role (empty keeps it)")
	if roleText == "" {
		return nil
	}
	role, ok := models.ParseRole(roleText)
	if !ok {
		a.printf("Unknown role %q\n", roleText)
		return nil
	}
	_, err := s.SetRole(ctx, id, role)
	return err
}

func (a *App) editProfile(ctx context.Context, s *services.ProfileScreen) error {
	var edit services.ProfileEdit
	edit.FirstName, _ = a.ask("First name (empty keeps it)")
	edit.LastName, _ = a.ask("Last name (empty keeps it)")
	edit.Email, _ = a.ask("Email (empty keeps it)")
	edit.DOB, _ = a.ask("Date of birth (empty keeps it)")
	_, err := s.Update(ctx, edit)
	return err
}

// editLab retitles the lab assignment ("edit assignment") or a todo. An empty
// todo title toggles its completed flag.
func (a *App) editLab(ctx context.Context, s *services.LabScreen, id string) error {
	if id == "assignment" {
		title, err := a.ask("Assignment title")
		if err != nil {
			return err
		}
		_, err = s.SetAssignmentTitle(ctx, title)
		return err
	}
	title, err := a.ask("Todo title (empty toggles completed)")
	if err != nil {
		return err
	}
	if title == "" {
		_, err = s.ToggleTodo(ctx, id)
	} else {
		_, err = s.RetitleTodo(ctx, id, title)
	}
	return err
}

func (a *App) Delete(ctx context.Context, id string) error {
	var err error
	switch s := a.current().(type) {
	case *services.UsersScreen:
		err = s.Delete(ctx, id)
	case *services.PeopleScreen:
		err = s.DeleteUser(ctx, id)
	case *services.Dashboard:
		err = s.DeleteCourse(ctx, id)
	case *services.ModulesScreen:
		err = s.Delete(ctx, id)
	case *services.AssignmentsScreen:
		err = s.Delete(ctx, id)
	case *services.LabScreen:
		err = s.DeleteTodo(ctx, id)
	default:
		return fmt.Errorf("delete: %w", errNoSuchCommand)
	}
	if err != nil {
		return err
	}
	return a.List(ctx)
}

// Remove deletes a lab todo through the legacy GET endpoint.
func (a *App) Remove(ctx context.Context, id string) error {
	s, ok := a.current().(*services.LabScreen)
	if !ok {
		return fmt.Errorf("remove: %w", errNoSuchCommand)
	}
	if _, err := s.RemoveTodoLegacy(ctx, id); err != nil {
		return err
	}
	return a.List(ctx)
}

func (a *App) dashboard() (*services.Dashboard, error) {
	d, ok := a.current().(*services.Dashboard)
	if !ok {
		return nil, fmt.Errorf("open 'courses' first: %w", errNoSuchCommand)
	}
	return d, nil
}

func (a *App) Enroll(ctx context.Context, courseID string) error {
	d, err := a.dashboard()
	if err != nil {
		return err
	}
	if err := d.Enroll(ctx, courseID); err != nil {
		return err
	}
	a.printf("Enrolled in %s.\n", courseID)
	return nil
}

func (a *App) Unenroll(ctx context.Context, courseID string) error {
	d, err := a.dashboard()
	if err != nil {
		return err
	}
	if err := d.Unenroll(ctx, courseID); err != nil {
		return err
	}
	a.printf("Unenrolled from %s.\n", courseID)
	return nil
}

func (a *App) Toggle(ctx context.Context) error {
	d, err := a.dashboard()
	if err != nil {
		return err
	}
	if d.ToggleEnrolledOnly() {
		a.println("Showing enrolled courses only.")
	} else {
		a.println("Showing all courses.")
	}
	return a.List(ctx)
}
