package booking

import (
	"time"

	"github.com/skillverse/skillverse/internal/common/clock"
	"github.com/skillverse/skillverse/internal/common/uuid"
	"github.com/skillverse/skillverse/internal/models"
	ledgerRepo "github.com/skillverse/skillverse/internal/repositories/ledger"
	sessionRepo "github.com/skillverse/skillverse/internal/repositories/session"
	userRepo "github.com/skillverse/skillverse/internal/repositories/user"
)

// Config holds configuration for the booking service
type Config struct {
	// MinDurationMinutes is the shortest bookable session; defaults to 30
	MinDurationMinutes int

	// BookingCostCredits is the balance a learner must hold to book;
	// defaults to 1. The check is advisory, not a hold.
	BookingCostCredits int64

	// Repository dependencies
	SessionRepo sessionRepo.Repository
	LedgerRepo  ledgerRepo.Repository
	UserRepo    userRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// BookInput contains parameters for booking a session
type BookInput struct {
	// LearnerID is the verified identity of the caller
	LearnerID string

	// HostID is the mentor being booked
	HostID string

	// ScheduledTime is when the session should take place
	ScheduledTime time.Time

	// DurationMinutes is the planned length of the session
	DurationMinutes int
}

// BookOutput contains the result of booking a session
type BookOutput struct {
	Session *models.Session
	Booking *models.Booking
}

// ConfirmInput contains parameters for confirming a session
type ConfirmInput struct {
	SessionID string

	// ActorID is the verified identity of the caller; must be the host
	ActorID string
}

// ConfirmOutput contains the result of confirming a session
type ConfirmOutput struct {
	Session *models.Session
}

// CancelInput contains parameters for cancelling a session
type CancelInput struct {
	SessionID string

	// ActorID is the verified identity of the caller; must be a participant
	ActorID string
}

// CancelOutput contains the result of cancelling a session
type CancelOutput struct {
	Session *models.Session
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	SessionID string
	ActorID   string
}

// GetSessionOutput contains the result of retrieving a session
type GetSessionOutput struct {
	Session *models.Session
	Booking *models.Booking
}

// ListSessionsInput contains parameters for listing a user's sessions
type ListSessionsInput struct {
	UserID string
}

// ListSessionsOutput contains the result of listing a user's sessions
type ListSessionsOutput struct {
	Sessions []*models.Session
}
