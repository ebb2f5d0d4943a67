package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/skillverse/skillverse/internal/models"
	ledgerRepo "github.com/skillverse/skillverse/internal/repositories/ledger"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix      = "session:"
	bookingKeyPrefix      = "booking:session:"
	userSessionsKeyPrefix = "user_sessions:"
)

var (
	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrBookingNotFound is returned when a session's booking is not found
	ErrBookingNotFound = errors.New("booking not found")

	// ErrStatusConflict is returned when the session's status observed under
	// WATCH is not one of the expected statuses for the transition
	ErrStatusConflict = errors.New("session status conflict")

	// ErrTransferAborted is returned when the completion transaction was
	// aborted by a concurrent write to the session. The session was left
	// unchanged and the operation may be retried.
	ErrTransferAborted = errors.New("completion transaction aborted")
)

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func bookingKey(sessionID string) string {
	return bookingKeyPrefix + sessionID
}

func userSessionsKey(userID string) string {
	return userSessionsKeyPrefix + userID
}

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// CreateSession persists a new session and its mirrored booking atomically
func (r *redisRepository) CreateSession(ctx context.Context, input *CreateSessionInput) error {
	if input == nil || input.Session == nil || input.Booking == nil {
		return errors.New("input, session and booking cannot be nil")
	}

	if input.Session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	if input.Booking.SessionID != input.Session.ID {
		return errors.New("booking must mirror the session being created")
	}

	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	bookingJSON, err := json.Marshal(input.Booking)
	if err != nil {
		return fmt.Errorf("failed to marshal booking: %w", err)
	}

	score := float64(input.Session.CreatedAt.UnixNano())

	// Session, booking and both participant indexes commit as one unit
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(input.Session.ID), sessionJSON, 0)
		pipe.Set(ctx, bookingKey(input.Session.ID), bookingJSON, 0)
		pipe.ZAdd(ctx, userSessionsKey(input.Session.HostID), redis.Z{
			Score:  score,
			Member: input.Session.ID,
		})
		pipe.ZAdd(ctx, userSessionsKey(input.Session.LearnerID), redis.Z{
			Score:  score,
			Member: input.Session.ID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionJSON, err := r.client.Get(ctx, sessionKey(input.SessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// GetBooking retrieves the booking mirroring a session
func (r *redisRepository) GetBooking(ctx context.Context, input *GetBookingInput) (*models.Booking, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	bookingJSON, err := r.client.Get(ctx, bookingKey(input.SessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	var booking models.Booking
	if err := json.Unmarshal([]byte(bookingJSON), &booking); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking: %w", err)
	}

	return &booking, nil
}

// GetSessionsForUser retrieves all sessions a user participates in, newest first
func (r *redisRepository) GetSessionsForUser(ctx context.Context, input *GetSessionsForUserInput) (*GetSessionsForUserOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	sessionIDs, err := r.client.ZRevRange(ctx, userSessionsKey(input.UserID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session IDs for user: %w", err)
	}

	if len(sessionIDs) == 0 {
		return &GetSessionsForUserOutput{
			Sessions: []*models.Session{},
		}, nil
	}

	pipe := r.client.Pipeline()
	sessionCommands := make([]*redis.StringCmd, len(sessionIDs))
	for i, sessionID := range sessionIDs {
		sessionCommands[i] = pipe.Get(ctx, sessionKey(sessionID))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	sessions := make([]*models.Session, 0, len(sessionIDs))
	for i, cmd := range sessionCommands {
		sessionJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get session %s: %w", sessionIDs[i], err)
		}

		var session models.Session
		if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session %s: %w", sessionIDs[i], err)
		}

		sessions = append(sessions, &session)
	}

	return &GetSessionsForUserOutput{
		Sessions: sessions,
	}, nil
}

// UpdateSessionStatus transitions a session to a new status. The status
// observed at read time is the optimistic-concurrency token: the write is
// conditioned on it via WATCH, so concurrent transition attempts produce
// exactly one winner and the losers get ErrStatusConflict.
func (r *redisRepository) UpdateSessionStatus(ctx context.Context, input *UpdateSessionStatusInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	if len(input.ExpectedStatuses) == 0 {
		return nil, errors.New("expected statuses cannot be empty")
	}

	var updated *models.Session

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		sessionJSON, err := tx.Get(ctx, sessionKey(input.SessionID)).Result()
		if err != nil {
			if err == redis.Nil {
				return ErrSessionNotFound
			}
			return fmt.Errorf("failed to get session: %w", err)
		}

		var session models.Session
		if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}

		if !statusExpected(session.Status, input.ExpectedStatuses) {
			return ErrStatusConflict
		}

		session.Status = input.NewStatus
		session.UpdatedAt = input.Timestamp
		if input.NewStatus == models.SessionStatusCancelled {
			session.CancelledAt = input.Timestamp
		}

		booking, err := r.GetBooking(ctx, &GetBookingInput{SessionID: input.SessionID})
		if err != nil {
			return err
		}
		booking.Status = models.BookingStatusFor(input.NewStatus)
		booking.UpdatedAt = input.Timestamp

		newSessionJSON, err := json.Marshal(&session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		newBookingJSON, err := json.Marshal(booking)
		if err != nil {
			return fmt.Errorf("failed to marshal booking: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, sessionKey(input.SessionID), newSessionJSON, 0)
			pipe.Set(ctx, bookingKey(input.SessionID), newBookingJSON, 0)
			return nil
		})
		if err != nil {
			return err
		}

		updated = &session
		return nil
	}, sessionKey(input.SessionID))

	if err != nil {
		if err == redis.TxFailedErr {
			// Another writer changed the session between read and commit
			return nil, ErrStatusConflict
		}
		return nil, err
	}

	return updated, nil
}

// CompleteSession atomically transitions a CONFIRMED session to COMPLETED and
// appends the two offsetting ledger entries. The session write, both entry
// records and both balance updates commit in one MULTI/EXEC unit guarded by
// WATCH on the session key; a half-applied transfer is never visible.
func (r *redisRepository) CompleteSession(ctx context.Context, input *CompleteSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	if input.DebitEntry == nil || input.CreditEntry == nil {
		return nil, errors.New("debit and credit entries cannot be nil")
	}

	// The pair must conserve the credit supply
	if input.DebitEntry.Amount+input.CreditEntry.Amount != 0 {
		return nil, errors.New("ledger entries must be zero-sum")
	}

	if input.DebitEntry.ReferenceID != input.SessionID || input.CreditEntry.ReferenceID != input.SessionID {
		return nil, errors.New("ledger entries must reference the session")
	}

	var completed *models.Session

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		sessionJSON, err := tx.Get(ctx, sessionKey(input.SessionID)).Result()
		if err != nil {
			if err == redis.Nil {
				return ErrSessionNotFound
			}
			return fmt.Errorf("failed to get session: %w", err)
		}

		var session models.Session
		if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}

		// Re-checked under WATCH: a session must never be billed twice
		if session.Status != models.SessionStatusConfirmed {
			return ErrStatusConflict
		}

		session.Status = models.SessionStatusCompleted
		session.CompletedAt = input.CompletedAt
		session.UpdatedAt = input.CompletedAt

		newSessionJSON, err := json.Marshal(&session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, sessionKey(input.SessionID), newSessionJSON, 0)
			if err := ledgerRepo.StageEntry(ctx, pipe, input.DebitEntry); err != nil {
				return err
			}
			return ledgerRepo.StageEntry(ctx, pipe, input.CreditEntry)
		})
		if err != nil {
			return err
		}

		completed = &session
		return nil
	}, sessionKey(input.SessionID))

	if err != nil {
		if err == redis.TxFailedErr {
			// A concurrent write invalidated the watch; the session and the
			// ledger were left untouched, so the caller may retry
			return nil, ErrTransferAborted
		}
		return nil, err
	}

	return completed, nil
}

func statusExpected(status models.SessionStatus, expected []models.SessionStatus) bool {
	for _, s := range expected {
		if status == s {
			return true
		}
	}
	return false
}
