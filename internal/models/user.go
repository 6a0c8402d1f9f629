package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the profiles table. Accounts themselves live in the auth
// provider; we only read profile rows for display and ownership lookups.
type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email" validate:"required,email"`
	FullName  string    `db:"full_name" json:"full_name" validate:"required"`
	Password  string    `db:"-" json:"password,omitempty" validate:"omitempty,min=8"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
