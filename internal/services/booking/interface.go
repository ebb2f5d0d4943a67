package booking

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/skillverse/skillverse/internal/services/booking Service

import "context"

// Service defines the interface for the session registry: booking sessions
// and driving the confirmation/cancellation side of the state machine.
type Service interface {
	// Book creates a new PENDING session and its mirrored booking
	Book(ctx context.Context, input *BookInput) (*BookOutput, error)

	// Confirm transitions a PENDING session to CONFIRMED (host only)
	Confirm(ctx context.Context, input *ConfirmInput) (*ConfirmOutput, error)

	// Cancel transitions a PENDING or CONFIRMED session to CANCELLED
	// (either participant); cancelling never moves credits
	Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error)

	// GetSession retrieves a session for one of its participants
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// ListSessions retrieves all sessions a user participates in, newest first
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)
}
