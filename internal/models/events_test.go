package models

import (
	"testing"
)

func TestEventIsFull(t *testing.T) {
	cases := []struct {
		name    string
		current int
		max     int
		full    bool
	}{
		{"empty", 0, 10, false},
		{"one short", 9, 10, false},
		{"at capacity", 10, 10, true},
		{"over capacity", 11, 10, true},
		{"zero capacity", 0, 0, true},
	}

	for _, tc := range cases {
		e := &Event{CurrentAttendees: tc.current, MaxAttendees: tc.max}
		if got := e.IsFull(); got != tc.full {
			t.Errorf("%s: IsFull() = %v, want %v", tc.name, got, tc.full)
		}
	}
}

func TestEventValidation(t *testing.T) {
	e := &Event{
		Title:        "Launch party",
		Description:  "d",
		Location:     "l",
		MaxAttendees: 10,
	}
	if err := Validate.Struct(e); err == nil {
		t.Error("expected validation error for missing date")
	}
}
