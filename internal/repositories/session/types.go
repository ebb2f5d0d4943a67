package session

import (
	"time"

	"github.com/skillverse/skillverse/internal/models"
)

// CreateSessionInput contains parameters for creating a session with its booking
type CreateSessionInput struct {
	Session *models.Session
	Booking *models.Booking
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	SessionID string
}

// GetBookingInput contains parameters for retrieving a session's booking
type GetBookingInput struct {
	SessionID string
}

// GetSessionsForUserInput contains parameters for listing a user's sessions
type GetSessionsForUserInput struct {
	UserID string
}

// GetSessionsForUserOutput contains the result of listing a user's sessions
type GetSessionsForUserOutput struct {
	Sessions []*models.Session
}

// UpdateSessionStatusInput contains parameters for a conditional status transition
type UpdateSessionStatusInput struct {
	SessionID string

	// ExpectedStatuses are the statuses the transition is valid from. If the
	// status observed under WATCH is not one of these, the update fails with
	// ErrStatusConflict and nothing is written.
	ExpectedStatuses []models.SessionStatus

	// NewStatus is the status to transition to
	NewStatus models.SessionStatus

	// Timestamp is applied to UpdatedAt and, for CANCELLED, CancelledAt
	Timestamp time.Time
}

// CompleteSessionInput contains parameters for the atomic completion transfer
type CompleteSessionInput struct {
	SessionID string

	// CompletedAt is applied to the session's CompletedAt and UpdatedAt
	CompletedAt time.Time

	// DebitEntry is the learner's -1 SPENT entry
	DebitEntry *models.LedgerEntry

	// CreditEntry is the host's +1 EARNED entry
	CreditEntry *models.LedgerEntry
}
