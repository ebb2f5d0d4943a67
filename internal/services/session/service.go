package session

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/skillverse/skillverse/internal/models"
	sessionRepo "github.com/skillverse/skillverse/internal/repositories/session"
)

const defaultSessionCostCredits = 1

// service implements the Service interface
type service struct {
	config      *Config
	sessionRepo sessionRepo.Repository
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.SessionCostCredits == 0 {
		cfg.SessionCostCredits = defaultSessionCostCredits
	}

	return &service{
		config:      cfg,
		sessionRepo: cfg.SessionRepo,
	}, nil
}

// Complete transitions a CONFIRMED session to COMPLETED and exchanges the
// credit. All guards run before any mutation is attempted; the transition
// and the two offsetting ledger entries then commit as a single unit.
func (s *service) Complete(ctx context.Context, input *CompleteInput) (*CompleteOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: input.SessionID})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if session.HostID != input.ActorID {
		return nil, ErrNotHost
	}

	if session.Status != models.SessionStatusConfirmed {
		return nil, ErrInvalidState
	}

	now := s.config.Clock.Now()

	debit := &models.LedgerEntry{
		ID:          s.config.UUIDGenerator.NewUUID(),
		UserID:      session.LearnerID,
		Amount:      -s.config.SessionCostCredits,
		Kind:        models.LedgerEntryKindSpent,
		ReferenceID: session.ID,
		CreatedAt:   now,
	}

	credit := &models.LedgerEntry{
		ID:          s.config.UUIDGenerator.NewUUID(),
		UserID:      session.HostID,
		Amount:      s.config.SessionCostCredits,
		Kind:        models.LedgerEntryKindEarned,
		ReferenceID: session.ID,
		CreatedAt:   now,
	}

	completed, err := s.sessionRepo.CompleteSession(ctx, &sessionRepo.CompleteSessionInput{
		SessionID:   session.ID,
		CompletedAt: now,
		DebitEntry:  debit,
		CreditEntry: credit,
	})
	if err != nil {
		// The status changed between the guard and the commit: exactly one
		// completion wins, the loser is told the state is no longer valid
		if errors.Is(err, sessionRepo.ErrStatusConflict) {
			return nil, ErrInvalidState
		}
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}

		// A transfer that cannot commit is a potential accounting
		// discrepancy, so it is logged for operators as well as returned
		log.Printf("completion transfer failed for session %s: %v", session.ID, err)
		return nil, ErrTransferFailed
	}

	return &CompleteOutput{
		Session:     completed,
		DebitEntry:  debit,
		CreditEntry: credit,
	}, nil
}

// VideoToken issues a simulated token for joining a confirmed session.
// A real implementation would call a video SDK here.
func (s *service) VideoToken(ctx context.Context, input *VideoTokenInput) (*VideoTokenOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: input.SessionID})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if !session.IsParticipant(input.ActorID) {
		return nil, ErrNotParticipant
	}

	if session.Status != models.SessionStatusConfirmed {
		return nil, ErrInvalidState
	}

	token := fmt.Sprintf("video-%s-%s-%s", session.ID, input.ActorID, s.config.UUIDGenerator.NewUUID())

	return &VideoTokenOutput{Token: token}, nil
}
