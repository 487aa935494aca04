package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Assignment struct {
	ID             string `json:"_id,omitempty"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Points         int    `json:"points,omitempty"`
	DueDate        string `json:"dueDate,omitempty"`
	AvailableFrom  string `json:"availableFrom,omitempty"`
	AvailableUntil string `json:"availableUntil,omitempty"`
	Course         string `json:"course,omitempty"`
	Group          string `json:"group,omitempty"`
}

func (a Assignment) GetID() string { return a.ID }

var shortMonths = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// FormatDate renders an assignment date as "May 6 • 11:59pm". It accepts
// RFC 3339 timestamps, "2006-01-02" style dates and the short "May 6" form
// (which is taken as midnight of the current year). Anything it cannot parse
// is returned unchanged, and the empty string stays empty.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	t, ok := parseDate(s)
	if !ok {
		return s
	}

	month := shortMonths[t.Month()-1]
	h, m := t.Hour(), t.Minute()

	ampm := "am"
	if h >= 12 {
		ampm = "pm"
	}
	dh := h % 12
	if dh == 0 {
		dh = 12
	}
	return fmt.Sprintf("%s %d • %d:%02d%s", month, t.Day(), dh, m, ampm)
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	parts := strings.Fields(s)
	if len(parts) == 2 {
		for i, name := range shortMonths {
			if parts[0] != name {
				continue
			}
			day, err := strconv.Atoi(parts[1])
			if err != nil || day < 1 || day > 31 {
				return time.Time{}, false
			}
			return time.Date(time.Now().Year(), time.Month(i+1), day, 0, 0, 0, 0, time.Local), true
		}
	}
	return time.Time{}, false
}

// AssignmentDraft is the new-assignment form.
type AssignmentDraft struct {
	Title   string `json:"title" validate:"required,notblank"`
	Points  int    `json:"points,omitempty" validate:"gte=0"`
	DueDate string `json:"dueDate,omitempty"`
	Course  string `json:"course,omitempty"`
}

func (d AssignmentDraft) Assignment() Assignment {
	return Assignment{Title: d.Title, Points: d.Points, DueDate: d.DueDate, Course: d.Course}
}
