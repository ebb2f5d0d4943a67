package models

import (
	"time"
)

// BookingStatus represents the presentation status of a booking
type BookingStatus string

const (
	// BookingStatusPendingConfirmation indicates the booking awaits mentor confirmation
	BookingStatusPendingConfirmation BookingStatus = "PENDING_CONFIRMATION"

	// BookingStatusConfirmed indicates the booking was confirmed by the mentor
	BookingStatusConfirmed BookingStatus = "CONFIRMED"

	// BookingStatusCancelled indicates the booking was cancelled
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// BookingStatusFor maps a session status onto the booking vocabulary.
// COMPLETED has no booking equivalent; a completed session's booking
// stays CONFIRMED.
func BookingStatusFor(status SessionStatus) BookingStatus {
	switch status {
	case SessionStatusPending:
		return BookingStatusPendingConfirmation
	case SessionStatusCancelled:
		return BookingStatusCancelled
	default:
		return BookingStatusConfirmed
	}
}

// Booking is the 1:1 presentation mirror of a Session. It is created in the
// same storage transaction as its session and updated in the same transaction
// as every session status change, so the two can never drift.
type Booking struct {
	// ID is the unique identifier for the booking
	ID string

	// SessionID is the session this booking mirrors
	SessionID string

	// LearnerID is the user who requested the booking
	LearnerID string

	// Status is the presentation status of the booking
	Status BookingStatus

	// CreatedAt is when the booking was created
	CreatedAt time.Time

	// UpdatedAt is when the booking was last modified
	UpdatedAt time.Time
}
