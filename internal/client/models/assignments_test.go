package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "2026-05-06T23:59:00Z", want: "May 6 • 11:59pm"},
		{in: "2026-05-07T00:00:00Z", want: "May 7 • 12:00am"},
		{in: "2026-05-13T09:05:00-04:00", want: "May 13 • 9:05am"},
		{in: "2026-05-13T12:30", want: "May 13 • 12:30pm"},
		{in: "2026-09-01", want: "Sep 1 • 12:00am"},
		{in: "May 6", want: "May 6 • 12:00am"},
		{in: "May 40", want: "May 40"},
		{in: "Someday soon", want: "Someday soon"},
		{in: "not a date", want: "not a date"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}
