package models

import (
	"time"
)

// SessionStatus represents the current state of a session
type SessionStatus string

const (
	// SessionStatusPending indicates a session is waiting for mentor confirmation
	SessionStatusPending SessionStatus = "PENDING"

	// SessionStatusConfirmed indicates the mentor has confirmed the session
	SessionStatusConfirmed SessionStatus = "CONFIRMED"

	// SessionStatusCompleted indicates the session took place and credits were exchanged
	SessionStatusCompleted SessionStatus = "COMPLETED"

	// SessionStatusCancelled indicates the session was cancelled by a participant
	SessionStatusCancelled SessionStatus = "CANCELLED"
)

// IsTerminal reports whether the status admits no further transitions.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusCancelled
}

// CanTransitionTo reports whether the state machine allows moving from s to next.
// The only edges are PENDING→CONFIRMED, CONFIRMED→COMPLETED, and
// {PENDING,CONFIRMED}→CANCELLED.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	switch next {
	case SessionStatusConfirmed:
		return s == SessionStatusPending
	case SessionStatusCompleted:
		return s == SessionStatusConfirmed
	case SessionStatusCancelled:
		return s == SessionStatusPending || s == SessionStatusConfirmed
	default:
		return false
	}
}

// Session represents one booked learning encounter between a host and a learner
type Session struct {
	// ID is the unique identifier for the session
	ID string

	// HostID is the user ID of the mentor hosting the session
	HostID string

	// LearnerID is the user ID of the learner who booked the session
	LearnerID string

	// ScheduledTime is when the session is scheduled to take place
	ScheduledTime time.Time

	// DurationMinutes is the planned length of the session
	DurationMinutes int

	// Status is the current state of the session
	Status SessionStatus

	// CreatedAt is when the session was booked
	CreatedAt time.Time

	// UpdatedAt is when the session was last modified
	UpdatedAt time.Time

	// CompletedAt is when the session was completed (zero unless COMPLETED)
	CompletedAt time.Time

	// CancelledAt is when the session was cancelled (zero unless CANCELLED)
	CancelledAt time.Time
}

// IsParticipant reports whether userID is the host or the learner of the session.
func (s *Session) IsParticipant(userID string) bool {
	return userID == s.HostID || userID == s.LearnerID
}

// OtherParticipant returns the participant that is not userID.
// Callers must check IsParticipant first.
func (s *Session) OtherParticipant(userID string) string {
	if userID == s.HostID {
		return s.LearnerID
	}
	return s.HostID
}
