package collection

import (
	"strings"

	"github.com/dmitrijs2005/kambaz/internal/client/models"
)

// Filter is a display predicate. Filters never modify the items they test.
type Filter[T any] func(T) bool

// Apply returns the items that pass every filter, in their original order.
// The result is a new slice; items is not modified.
func Apply[T any](items []T, filters ...Filter[T]) []T {
	out := make([]T, 0, len(items))
next:
	for _, it := range items {
		for _, f := range filters {
			if f != nil && !f(it) {
				continue next
			}
		}
		out = append(out, it)
	}
	return out
}

// IDIn keeps records whose id is in ids.
func IDIn[T Record](ids map[string]struct{}) Filter[T] {
	return func(rec T) bool {
		_, ok := ids[rec.GetID()]
		return ok
	}
}

// RoleIs keeps users with role. An empty role keeps everyone.
func RoleIs(role models.Role) Filter[models.User] {
	return func(u models.User) bool {
		return role == "" || u.Role == role
	}
}

// NameContains matches term case-insensitively against first, last and full
// name. An empty term keeps everyone.
func NameContains(term string) Filter[models.User] {
	t := normalize(term)
	return func(u models.User) bool {
		if t == "" {
			return true
		}
		return containsAny(t, u.FirstName, u.LastName, u.FullName())
	}
}

// PeopleSearch matches term against the roster columns: full name, username,
// email, section, role and id.
func PeopleSearch(term string) Filter[models.User] {
	t := normalize(term)
	return func(u models.User) bool {
		if t == "" {
			return true
		}
		return containsAny(t, u.FullName(), u.Username, u.Email, u.Section, string(u.Role), u.ID)
	}
}

func TitleContains(term string) Filter[models.Assignment] {
	t := normalize(term)
	return func(a models.Assignment) bool {
		return t == "" || strings.Contains(strings.ToLower(a.Title), t)
	}
}

func ModuleNameContains(term string) Filter[models.Module] {
	t := normalize(term)
	return func(m models.Module) bool {
		return t == "" || strings.Contains(strings.ToLower(m.Name), t)
	}
}

func CourseNameContains(term string) Filter[models.Course] {
	t := normalize(term)
	return func(c models.Course) bool {
		return t == "" || containsAny(t, c.Name, c.Number)
	}
}

func normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

func containsAny(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
