package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/skillverse/skillverse/internal/repositories/session Repository

import (
	"context"

	"github.com/skillverse/skillverse/internal/models"
)

// Repository defines the interface for session and booking persistence.
// A booking is the 1:1 presentation mirror of its session; every write that
// touches a session status also writes the mirror in the same transaction.
type Repository interface {
	// CreateSession persists a new session and its mirrored booking atomically
	CreateSession(ctx context.Context, input *CreateSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// GetBooking retrieves the booking mirroring a session
	GetBooking(ctx context.Context, input *GetBookingInput) (*models.Booking, error)

	// GetSessionsForUser retrieves all sessions a user participates in, newest first
	GetSessionsForUser(ctx context.Context, input *GetSessionsForUserInput) (*GetSessionsForUserOutput, error)

	// UpdateSessionStatus transitions a session to a new status, conditioned
	// on the status observed under WATCH; the mirrored booking is updated in
	// the same transaction
	UpdateSessionStatus(ctx context.Context, input *UpdateSessionStatusInput) (*models.Session, error)

	// CompleteSession atomically transitions a CONFIRMED session to COMPLETED
	// and appends the two offsetting ledger entries; all effects commit as a
	// single unit or none are visible
	CompleteSession(ctx context.Context, input *CompleteSessionInput) (*models.Session, error)
}
