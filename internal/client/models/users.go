// Package models defines the Kambaz records exchanged with the API server and
// the drafts the CLI builds before creating them.
package models

import (
	"strings"
)

// Role is a user's role within Kambaz.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleFaculty Role = "FACULTY"
	RoleAdmin   Role = "ADMIN"
	RoleTA      Role = "TA"
)

// Roles lists every known role in display order.
var Roles = []Role{RoleStudent, RoleFaculty, RoleAdmin, RoleTA}

// ParseRole matches s case-insensitively against the known roles.
func ParseRole(s string) (Role, bool) {
	up := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, r := range Roles {
		if r == up {
			return r, true
		}
	}
	return "", false
}

// User is a Kambaz account. Password is only populated on drafts sent to the
// server and is never echoed back by well-behaved servers.
type User struct {
	ID            string `json:"_id,omitempty"`
	Username      string `json:"username"`
	Password      string `json:"password,omitempty"`
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	Email         string `json:"email,omitempty"`
	Role          Role   `json:"role,omitempty"`
	Section       string `json:"section,omitempty"`
	LoginID       string `json:"loginId,omitempty"`
	DOB           string `json:"dob,omitempty"`
	LastActivity  string `json:"lastActivity,omitempty"`
	TotalActivity string `json:"totalActivity,omitempty"`
}

func (u User) GetID() string { return u.ID }

// FullName joins first and last name, trimming the gap when either is empty.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DisplayLoginID falls back to "00" followed by the id when no login id is
// assigned.
func (u User) DisplayLoginID() string {
	if u.LoginID != "" {
		return u.LoginID
	}
	return "00" + u.ID
}

// HasRole reports whether the user holds one of roles.
func (u User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// IsFacultyOrAdmin gates course, module and assignment editing.
func (u User) IsFacultyOrAdmin() bool {
	return u.HasRole(RoleFaculty, RoleAdmin)
}

// Credentials is the sign-in draft.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignUp is the self-registration draft. VerifyPassword never leaves the
// client.
type SignUp struct {
	Username       string `json:"username" validate:"required"`
	Password       string `json:"password" validate:"required"`
	VerifyPassword string `json:"-" validate:"eqfield=Password"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Role           Role   `json:"role,omitempty" validate:"omitempty,oneof=STUDENT FACULTY ADMIN TA"`
}

// User converts the draft into the request body, defaulting the role to
// STUDENT.
func (s SignUp) User() User {
	role := s.Role
	if role == "" {
		role = RoleStudent
	}
	return User{
		Username:  s.Username,
		Password:  s.Password,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
		Role:      role,
	}
}

// NewUser is the administrator's create-user draft.
type NewUser struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Role      Role   `json:"role" validate:"omitempty,oneof=STUDENT FACULTY ADMIN TA"`
}

// User converts the draft into the request body, defaulting the role to
// STUDENT.
func (n NewUser) User() User {
	role := n.Role
	if role == "" {
		role = RoleStudent
	}
	return User{
		Username:  n.Username,
		Password:  n.Password,
		FirstName: n.FirstName,
		LastName:  n.LastName,
		Email:     n.Email,
		Role:      role,
	}
}
