package models

import "errors"

// Error taxonomy for registration and event lookups. Handlers map these to
// status codes; anything unwrapped is a plain store failure and surfaces as a
// generic "error updating registration" style message.
var (
	ErrNotFound        = errors.New("event not found")
	ErrEventFull       = errors.New("event is full")
	ErrUnauthenticated = errors.New("no authenticated user")

	// ErrPartialUpdate means the attendance record mutation committed but the
	// follow-up counter adjustment failed, leaving the counter and the record
	// set inconsistent until externally reconciled. Kept distinct from a plain
	// store failure so it can be logged and surfaced as such.
	ErrPartialUpdate = errors.New("registration partially applied: attendee counter out of sync")
)
