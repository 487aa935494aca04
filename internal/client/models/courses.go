package models

import "strings"

// DefaultCourseImage is shown for courses without an image.
const DefaultCourseImage = "/Images/reactjs.jpg"

type Course struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name"`
	Number      string `json:"number,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Department  string `json:"department,omitempty"`
	Credits     int    `json:"credits,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

func (c Course) GetID() string { return c.ID }

// ImagePath normalizes the image path to the /Images/ directory and falls
// back to DefaultCourseImage.
func (c Course) ImagePath() string {
	if c.Image == "" {
		return DefaultCourseImage
	}
	return strings.Replace(c.Image, "/images/", "/Images/", 1)
}

// CourseDraft is the new-course form.
type CourseDraft struct {
	Name        string `json:"name" validate:"required"`
	Number      string `json:"number,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Department  string `json:"department,omitempty"`
	Credits     int    `json:"credits,omitempty" validate:"gte=0"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

func (d CourseDraft) Course() Course {
	return Course{
		Name:        d.Name,
		Number:      d.Number,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Department:  d.Department,
		Credits:     d.Credits,
		Description: d.Description,
		Image:       d.Image,
	}
}
