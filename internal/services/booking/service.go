package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillverse/skillverse/internal/models"
	ledgerRepo "github.com/skillverse/skillverse/internal/repositories/ledger"
	sessionRepo "github.com/skillverse/skillverse/internal/repositories/session"
	userRepo "github.com/skillverse/skillverse/internal/repositories/user"
)

const (
	defaultMinDurationMinutes = 30
	defaultBookingCostCredits = 1
)

// service implements the Service interface
type service struct {
	config      *Config
	sessionRepo sessionRepo.Repository
	ledgerRepo  ledgerRepo.Repository
	userRepo    userRepo.Repository
}

// New creates a new booking service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.LedgerRepo == nil {
		return nil, ErrNilLedgerRepo
	}

	if cfg.UserRepo == nil {
		return nil, ErrNilUserRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.MinDurationMinutes == 0 {
		cfg.MinDurationMinutes = defaultMinDurationMinutes
	}

	if cfg.BookingCostCredits == 0 {
		cfg.BookingCostCredits = defaultBookingCostCredits
	}

	return &service{
		config:      cfg,
		sessionRepo: cfg.SessionRepo,
		ledgerRepo:  cfg.LedgerRepo,
		userRepo:    cfg.UserRepo,
	}, nil
}

// Book creates a new PENDING session and its mirrored booking. The balance
// check is evaluated at request time and is not a hold: no credits move
// until the session completes.
func (s *service) Book(ctx context.Context, input *BookInput) (*BookOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	// Validation errors reject before any state is touched
	if input.LearnerID == input.HostID {
		return nil, ErrSelfBooking
	}

	if input.DurationMinutes < s.config.MinDurationMinutes {
		return nil, ErrInvalidDuration
	}

	if input.ScheduledTime.IsZero() {
		return nil, ErrInvalidScheduledTime
	}

	// The host identity must resolve to a real user
	if _, err := s.userRepo.GetUser(ctx, &userRepo.GetUserInput{UserID: input.HostID}); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrHostNotFound
		}
		return nil, err
	}

	balance, err := s.ledgerRepo.GetBalance(ctx, &ledgerRepo.GetBalanceInput{UserID: input.LearnerID})
	if err != nil {
		return nil, err
	}

	// Distinguishable error class so callers can prompt a purchase flow
	if balance.Balance < s.config.BookingCostCredits {
		return nil, ErrInsufficientCredits
	}

	now := s.config.Clock.Now()

	session := &models.Session{
		ID:              s.config.UUIDGenerator.NewUUID(),
		HostID:          input.HostID,
		LearnerID:       input.LearnerID,
		ScheduledTime:   input.ScheduledTime,
		DurationMinutes: input.DurationMinutes,
		Status:          models.SessionStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	booking := &models.Booking{
		ID:        s.config.UUIDGenerator.NewUUID(),
		SessionID: session.ID,
		LearnerID: input.LearnerID,
		Status:    models.BookingStatusPendingConfirmation,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessionRepo.CreateSession(ctx, &sessionRepo.CreateSessionInput{
		Session: session,
		Booking: booking,
	}); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &BookOutput{
		Session: session,
		Booking: booking,
	}, nil
}

// Confirm transitions a PENDING session to CONFIRMED. Only the host may
// confirm.
func (s *service) Confirm(ctx context.Context, input *ConfirmInput) (*ConfirmOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.getSessionForParticipant(ctx, input.SessionID, input.ActorID)
	if err != nil {
		return nil, err
	}

	if session.HostID != input.ActorID {
		return nil, ErrNotHost
	}

	if session.Status != models.SessionStatusPending {
		return nil, ErrInvalidState
	}

	updated, err := s.sessionRepo.UpdateSessionStatus(ctx, &sessionRepo.UpdateSessionStatusInput{
		SessionID:        input.SessionID,
		ExpectedStatuses: []models.SessionStatus{models.SessionStatusPending},
		NewStatus:        models.SessionStatusConfirmed,
		Timestamp:        s.config.Clock.Now(),
	})
	if err != nil {
		// A concurrent transition won; the precondition no longer holds
		if errors.Is(err, sessionRepo.ErrStatusConflict) {
			return nil, ErrInvalidState
		}
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return &ConfirmOutput{Session: updated}, nil
}

// Cancel transitions a PENDING or CONFIRMED session to CANCELLED. Either
// participant may cancel. Cancelling never moves credits: the balance check
// at booking time was advisory, not a hold.
func (s *service) Cancel(ctx context.Context, input *CancelInput) (*CancelOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.getSessionForParticipant(ctx, input.SessionID, input.ActorID)
	if err != nil {
		return nil, err
	}

	if session.Status.IsTerminal() {
		return nil, ErrInvalidState
	}

	updated, err := s.sessionRepo.UpdateSessionStatus(ctx, &sessionRepo.UpdateSessionStatusInput{
		SessionID: input.SessionID,
		ExpectedStatuses: []models.SessionStatus{
			models.SessionStatusPending,
			models.SessionStatusConfirmed,
		},
		NewStatus: models.SessionStatusCancelled,
		Timestamp: s.config.Clock.Now(),
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrStatusConflict) {
			return nil, ErrInvalidState
		}
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return &CancelOutput{Session: updated}, nil
}

// GetSession retrieves a session and its booking for one of its participants
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.getSessionForParticipant(ctx, input.SessionID, input.ActorID)
	if err != nil {
		return nil, err
	}

	booking, err := s.sessionRepo.GetBooking(ctx, &sessionRepo.GetBookingInput{SessionID: input.SessionID})
	if err != nil {
		return nil, err
	}

	return &GetSessionOutput{
		Session: session,
		Booking: booking,
	}, nil
}

// ListSessions retrieves all sessions a user participates in, newest first
func (s *service) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	output, err := s.sessionRepo.GetSessionsForUser(ctx, &sessionRepo.GetSessionsForUserInput{
		UserID: input.UserID,
	})
	if err != nil {
		return nil, err
	}

	return &ListSessionsOutput{Sessions: output.Sessions}, nil
}

// getSessionForParticipant loads a session and verifies the acting identity
// is one of its participants
func (s *service) getSessionForParticipant(ctx context.Context, sessionID, actorID string) (*models.Session, error) {
	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: sessionID})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if !session.IsParticipant(actorID) {
		return nil, ErrNotParticipant
	}

	return session, nil
}
