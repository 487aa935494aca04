package models

type Lesson struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Module      string `json:"module,omitempty"`
}

type Module struct {
	ID          string   `json:"_id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Course      string   `json:"course,omitempty"`
	Lessons     []Lesson `json:"lessons,omitempty"`
}

func (m Module) GetID() string { return m.ID }

// ModuleDraft is the new-module form. Whitespace-only names are rejected.
type ModuleDraft struct {
	Name   string `json:"name" validate:"required,notblank"`
	Course string `json:"course,omitempty"`
}

func (d ModuleDraft) Module() Module {
	return Module{Name: d.Name, Course: d.Course, Lessons: []Lesson{}}
}
