package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/kambaz/internal/client/collection"
	"github.com/dmitrijs2005/kambaz/internal/client/models"
	"github.com/dmitrijs2005/kambaz/internal/client/services"
)

func (a *App) table(header string, rows [][]string) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	_ = tw.Flush()
	if len(rows) == 0 {
		a.println("(nothing to show)")
	}
}

func (a *App) searchTerm() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.search
}

func (a *App) render(s services.Screen) {
	switch s := s.(type) {
	case nil:
		a.println("No screen open. Type 'help' for commands.")
	case *services.UsersScreen:
		a.renderUsers(s.Visible())
	case *services.PeopleScreen:
		a.renderUsers(s.Visible())
	case *services.Dashboard:
		var filters []collection.Filter[models.Course]
		if term := a.searchTerm(); term != "" {
			filters = append(filters, collection.CourseNameContains(term))
		}
		rows := [][]string{}
		for _, c := range s.Courses(filters...) {
			mark := ""
			if s.IsEnrolled(c.ID) {
				mark = "*"
			}
			rows = append(rows, []string{mark, c.ID, c.Number, c.Name, c.Department, fmt.Sprint(c.Credits)})
		}
		a.table("\tID\tNUMBER\tNAME\tDEPARTMENT\tCREDITS", rows)
	case *services.ModulesScreen:
		if c := s.Course(); c.Name != "" {
			a.printf("%s %s\n", c.Number, c.Name)
		}
		rows := [][]string{}
		for _, m := range s.Modules(a.searchTerm()) {
			rows = append(rows, []string{m.ID, m.Name, fmt.Sprint(len(m.Lessons))})
		}
		a.table("ID\tNAME\tLESSONS", rows)
	case *services.AssignmentsScreen:
		rows := [][]string{}
		for _, as := range s.Search(a.searchTerm()) {
			rows = append(rows, []string{as.ID, as.Title, models.FormatDate(as.DueDate), fmt.Sprintf("%d pts", as.Points)})
		}
		a.table("ID\tTITLE\tDUE\tPOINTS", rows)
	case *services.ProfileScreen:
		u, ok := s.Current()
		if !ok {
			a.println("Not signed in.")
			return
		}
		a.renderUser(u)
	case *services.LabScreen:
		as := s.Assignment()
		a.printf("Assignment: %s (score %d, completed %t)\n", as.Title, as.Score, as.Completed)
		rows := [][]string{}
		for _, t := range s.Todos() {
			done := " "
			if t.Completed {
				done = "x"
			}
			rows = append(rows, []string{t.GetID(), "[" + done + "]", t.Title})
		}
		a.table("ID\tDONE\tTITLE", rows)
	}
}

func (a *App) renderUsers(users []models.User) {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.FullName(), u.DisplayLoginID(), u.Section, string(u.Role)})
	}
	a.table("ID\tNAME\tLOGIN ID\tSECTION\tROLE", rows)
}

func (a *App) renderUser(u models.User) {
	a.table("FIELD\tVALUE", [][]string{
		{"Username", u.Username},
		{"Name", u.FullName()},
		{"Login ID", u.DisplayLoginID()},
		{"Email", u.Email},
		{"Date of birth", u.DOB},
		{"Section", u.Section},
		{"Role", string(u.Role)},
	})
}

func (a *App) renderCourse(c models.Course, enrolled bool) {
	a.table("FIELD\tVALUE", [][]string{
		{"ID", c.ID},
		{"Name", c.Name},
		{"Number", c.Number},
		{"Department", c.Department},
		{"Credits", fmt.Sprint(c.Credits)},
		{"Dates", strings.Trim(c.StartDate+" - "+c.EndDate, " -")},
		{"Image", c.ImagePath()},
		{"Enrolled", fmt.Sprint(enrolled)},
		{"Description", c.Description},
	})
}

func (a *App) renderModule(m models.Module) {
	a.printf("%s %s\n", m.ID, m.Name)
	if m.Description != "" {
		a.println(m.Description)
	}
	for _, l := range m.Lessons {
		a.printf("  - %s\n", l.Name)
	}
}

func (a *App) renderAssignment(as models.Assignment) {
	a.table("FIELD\tVALUE", [][]string{
		{"ID", as.ID},
		{"Title", as.Title},
		{"Points", fmt.Sprint(as.Points)},
		{"Available from", models.FormatDate(as.AvailableFrom)},
		{"Due", models.FormatDate(as.DueDate)},
		{"Available until", models.FormatDate(as.AvailableUntil)},
		{"Description", as.Description},
	})
}
