package models

import "strconv"

// Todo is a lab record. Unlike the course records its id is numeric and
// assigned by the lab server.
type Todo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
	Due         string `json:"due,omitempty"`
}

func (t Todo) GetID() string { return strconv.FormatInt(t.ID, 10) }

type TodoDraft struct {
	Title       string `json:"title" validate:"required,notblank"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
	Due         string `json:"due,omitempty"`
}

func (d TodoDraft) Todo() Todo {
	return Todo{Title: d.Title, Description: d.Description, Completed: d.Completed, Due: d.Due}
}

// LabAssignment is the single assignment object exposed by the lab server.
type LabAssignment struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Due         string `json:"due,omitempty"`
	Completed   bool   `json:"completed"`
	Score       int    `json:"score"`
}
