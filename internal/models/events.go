package models

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID uuid.UUID `db:"id" json:"id"`

	UserID           uuid.UUID `db:"user_id" json:"user_id"` // creating user, lookup key only
	Title            string    `db:"title" json:"title" validate:"required"`
	Description      string    `db:"description" json:"description" validate:"required"`
	Date             time.Time `db:"date" json:"date" validate:"required"` // start instant, no end time
	Location         string    `db:"location" json:"location" validate:"required"`
	ImageURL         string    `db:"image_url" json:"image_url,omitempty"`
	MaxAttendees     int       `db:"max_attendees" json:"max_attendees" validate:"required,gt=0"`
	CurrentAttendees int       `db:"current_attendees" json:"current_attendees" validate:"gte=0"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// AttendanceRecord is the join row linking one user to one event. The
// (event_id, user_id) pair is the natural key; at most one row exists per pair.
type AttendanceRecord struct {
	EventID uuid.UUID `db:"event_id" json:"event_id"`
	UserID  uuid.UUID `db:"user_id" json:"user_id"`
}

// IsFull reports whether the cached counter has reached capacity. The counter
// is maintained separately from the attendance rows, so this is a snapshot
// check, not a guarantee.
func (e *Event) IsFull() bool {
	return e.CurrentAttendees >= e.MaxAttendees
}
