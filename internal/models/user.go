package models

import (
	"time"
)

// User represents a marketplace member as seen by the core. Identity and
// profile management live in an external subsystem; the core reads
// identifiers and maintains the derived average rating. Credit balance is
// never stored here — it is always derived from the ledger.
type User struct {
	// ID is the opaque, already-verified user identifier
	ID string

	// Name is the display name of the user
	Name string

	// Headline is a short profile line shown in listings
	Headline string

	// AverageRating is the arithmetic mean of all ratings the user has
	// received, rounded to two decimal places. Derived by the review gate.
	AverageRating float64

	// CreatedAt is when the user record was first seen by the core
	CreatedAt time.Time
}
