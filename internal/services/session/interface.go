package session

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/skillverse/skillverse/internal/services/session Service

import "context"

// Service defines the interface for the completion coordinator
type Service interface {
	// Complete atomically transitions a CONFIRMED session to COMPLETED and
	// posts the two offsetting ledger entries (debit learner, credit host)
	Complete(ctx context.Context, input *CompleteInput) (*CompleteOutput, error)

	// VideoToken issues a token for joining the live session. The token is
	// simulated; no real video protocol is involved.
	VideoToken(ctx context.Context, input *VideoTokenInput) (*VideoTokenOutput, error)
}
