package models

import (
	"time"
)

// Review is a rating left by one participant of a completed session for the
// other. At most one review exists per session.
type Review struct {
	// ID is the unique identifier for the review
	ID string

	// SessionID is the completed session being reviewed
	SessionID string

	// ReviewerID is the participant who wrote the review
	ReviewerID string

	// RevieweeID is the other participant, the one being rated
	RevieweeID string

	// Rating is the score given, between 1 and 5 inclusive
	Rating int

	// Comment is optional free-form feedback
	Comment string

	// CreatedAt is when the review was submitted
	CreatedAt time.Time
}
