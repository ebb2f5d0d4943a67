package session

import (
	"github.com/skillverse/skillverse/internal/common/clock"
	"github.com/skillverse/skillverse/internal/common/uuid"
	"github.com/skillverse/skillverse/internal/models"
	sessionRepo "github.com/skillverse/skillverse/internal/repositories/session"
)

// Config holds configuration for the session service
type Config struct {
	// SessionCostCredits is how many credits one completed session moves
	// from learner to host; defaults to 1
	SessionCostCredits int64

	// Repository dependencies
	SessionRepo sessionRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// CompleteInput contains parameters for completing a session
type CompleteInput struct {
	SessionID string

	// ActorID is the verified identity of the caller; must be the host
	ActorID string
}

// CompleteOutput contains the result of completing a session
type CompleteOutput struct {
	Session *models.Session

	// DebitEntry is the learner's SPENT entry posted by the completion
	DebitEntry *models.LedgerEntry

	// CreditEntry is the host's EARNED entry posted by the completion
	CreditEntry *models.LedgerEntry
}

// VideoTokenInput contains parameters for issuing a video session token
type VideoTokenInput struct {
	SessionID string
	ActorID   string
}

// VideoTokenOutput contains the issued token
type VideoTokenOutput struct {
	Token string
}
