package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/skillverse/skillverse/internal/models"
	ledgerRepo "github.com/skillverse/skillverse/internal/repositories/ledger"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	ledger  ledgerRepo.Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repositories
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	ledger, err := ledgerRepo.NewRedis(&ledgerRepo.Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.ledger = ledger

	// Set up test time
	s.testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) createTestSession(status models.SessionStatus) *models.Session {
	session := &models.Session{
		ID:              "session-1",
		HostID:          "host-1",
		LearnerID:       "learner-1",
		ScheduledTime:   s.testNow.Add(24 * time.Hour),
		DurationMinutes: 60,
		Status:          status,
		CreatedAt:       s.testNow,
		UpdatedAt:       s.testNow,
	}

	booking := &models.Booking{
		ID:        "booking-1",
		SessionID: session.ID,
		LearnerID: session.LearnerID,
		Status:    models.BookingStatusFor(status),
		CreatedAt: s.testNow,
		UpdatedAt: s.testNow,
	}

	err := s.repo.CreateSession(context.Background(), &CreateSessionInput{
		Session: session,
		Booking: booking,
	})
	s.Require().NoError(err)

	return session
}

func (s *RedisRepositoryTestSuite) transferEntries(sessionID string) (*models.LedgerEntry, *models.LedgerEntry) {
	debit := &models.LedgerEntry{
		ID:          "entry-debit",
		UserID:      "learner-1",
		Amount:      -1,
		Kind:        models.LedgerEntryKindSpent,
		ReferenceID: sessionID,
		CreatedAt:   s.testNow.Add(time.Hour),
	}
	credit := &models.LedgerEntry{
		ID:          "entry-credit",
		UserID:      "host-1",
		Amount:      1,
		Kind:        models.LedgerEntryKindEarned,
		ReferenceID: sessionID,
		CreatedAt:   s.testNow.Add(time.Hour),
	}
	return debit, credit
}

func (s *RedisRepositoryTestSuite) TestCreateAndGetSessionWithBooking() {
	session := s.createTestSession(models.SessionStatusPending)

	got, err := s.repo.GetSession(context.Background(), &GetSessionInput{SessionID: session.ID})
	s.Require().NoError(err)
	s.Equal("host-1", got.HostID)
	s.Equal("learner-1", got.LearnerID)
	s.Equal(models.SessionStatusPending, got.Status)
	s.Equal(60, got.DurationMinutes)

	booking, err := s.repo.GetBooking(context.Background(), &GetBookingInput{SessionID: session.ID})
	s.Require().NoError(err)
	s.Equal(session.ID, booking.SessionID)
	s.Equal(models.BookingStatusPendingConfirmation, booking.Status)
}

func (s *RedisRepositoryTestSuite) TestGetSessionNotFound() {
	_, err := s.repo.GetSession(context.Background(), &GetSessionInput{SessionID: "missing"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestGetSessionsForUserNewestFirst() {
	ctx := context.Background()

	for i, id := range []string{"session-a", "session-b"} {
		createdAt := s.testNow.Add(time.Duration(i) * time.Minute)
		err := s.repo.CreateSession(ctx, &CreateSessionInput{
			Session: &models.Session{
				ID:              id,
				HostID:          "host-1",
				LearnerID:       "learner-1",
				ScheduledTime:   s.testNow.Add(24 * time.Hour),
				DurationMinutes: 30,
				Status:          models.SessionStatusPending,
				CreatedAt:       createdAt,
				UpdatedAt:       createdAt,
			},
			Booking: &models.Booking{
				ID:        "booking-" + id,
				SessionID: id,
				LearnerID: "learner-1",
				Status:    models.BookingStatusPendingConfirmation,
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			},
		})
		s.Require().NoError(err)
	}

	forHost, err := s.repo.GetSessionsForUser(ctx, &GetSessionsForUserInput{UserID: "host-1"})
	s.Require().NoError(err)
	s.Require().Len(forHost.Sessions, 2)
	s.Equal("session-b", forHost.Sessions[0].ID)
	s.Equal("session-a", forHost.Sessions[1].ID)

	forLearner, err := s.repo.GetSessionsForUser(ctx, &GetSessionsForUserInput{UserID: "learner-1"})
	s.Require().NoError(err)
	s.Len(forLearner.Sessions, 2)
}

func (s *RedisRepositoryTestSuite) TestUpdateSessionStatusMirrorsBooking() {
	session := s.createTestSession(models.SessionStatusPending)

	updated, err := s.repo.UpdateSessionStatus(context.Background(), &UpdateSessionStatusInput{
		SessionID:        session.ID,
		ExpectedStatuses: []models.SessionStatus{models.SessionStatusPending},
		NewStatus:        models.SessionStatusConfirmed,
		Timestamp:        s.testNow.Add(time.Minute),
	})
	s.Require().NoError(err)
	s.Equal(models.SessionStatusConfirmed, updated.Status)
	s.Equal(s.testNow.Add(time.Minute).Unix(), updated.UpdatedAt.Unix())

	booking, err := s.repo.GetBooking(context.Background(), &GetBookingInput{SessionID: session.ID})
	s.Require().NoError(err)
	s.Equal(models.BookingStatusConfirmed, booking.Status)
}

func (s *RedisRepositoryTestSuite) TestUpdateSessionStatusCancelSetsTimestamp() {
	session := s.createTestSession(models.SessionStatusConfirmed)

	updated, err := s.repo.UpdateSessionStatus(context.Background(), &UpdateSessionStatusInput{
		SessionID: session.ID,
		ExpectedStatuses: []models.SessionStatus{
			models.SessionStatusPending,
			models.SessionStatusConfirmed,
		},
		NewStatus: models.SessionStatusCancelled,
		Timestamp: s.testNow.Add(time.Minute),
	})
	s.Require().NoError(err)
	s.Equal(models.SessionStatusCancelled, updated.Status)
	s.False(updated.CancelledAt.IsZero())

	booking, err := s.repo.GetBooking(context.Background(), &GetBookingInput{SessionID: session.ID})
	s.Require().NoError(err)
	s.Equal(models.BookingStatusCancelled, booking.Status)
}

func (s *RedisRepositoryTestSuite) TestUpdateSessionStatusConflict() {
	session := s.createTestSession(models.SessionStatusCancelled)

	_, err := s.repo.UpdateSessionStatus(context.Background(), &UpdateSessionStatusInput{
		SessionID:        session.ID,
		ExpectedStatuses: []models.SessionStatus{models.SessionStatusPending},
		NewStatus:        models.SessionStatusConfirmed,
		Timestamp:        s.testNow,
	})
	s.ErrorIs(err, ErrStatusConflict)

	// The losing attempt left the session unchanged
	got, err := s.repo.GetSession(context.Background(), &GetSessionInput{SessionID: session.ID})
	s.Require().NoError(err)
	s.Equal(models.SessionStatusCancelled, got.Status)
}

func (s *RedisRepositoryTestSuite) TestCompleteSessionTransfersCredits() {
	ctx := context.Background()
	session := s.createTestSession(models.SessionStatusConfirmed)
	debit, credit := s.transferEntries(session.ID)

	completed, err := s.repo.CompleteSession(ctx, &CompleteSessionInput{
		SessionID:   session.ID,
		CompletedAt: s.testNow.Add(time.Hour),
		DebitEntry:  debit,
		CreditEntry: credit,
	})
	s.Require().NoError(err)
	s.Equal(models.SessionStatusCompleted, completed.Status)
	s.False(completed.CompletedAt.IsZero())

	// Conservation: the pair sums to zero and both balances moved exactly once
	learnerBalance, err := s.ledger.GetBalance(ctx, &ledgerRepo.GetBalanceInput{UserID: "learner-1"})
	s.Require().NoError(err)
	s.Equal(int64(-1), learnerBalance.Balance)

	hostBalance, err := s.ledger.GetBalance(ctx, &ledgerRepo.GetBalanceInput{UserID: "host-1"})
	s.Require().NoError(err)
	s.Equal(int64(1), hostBalance.Balance)

	entries, err := s.ledger.GetEntriesForUser(ctx, &ledgerRepo.GetEntriesForUserInput{
		UserID: "learner-1",
		Page:   1,
		Limit:  10,
	})
	s.Require().NoError(err)
	s.Require().Len(entries.Entries, 1)
	s.Equal(models.LedgerEntryKindSpent, entries.Entries[0].Kind)
	s.Equal(session.ID, entries.Entries[0].ReferenceID)
}

func (s *RedisRepositoryTestSuite) TestCompleteSessionTwiceFailsCleanly() {
	ctx := context.Background()
	session := s.createTestSession(models.SessionStatusConfirmed)
	debit, credit := s.transferEntries(session.ID)

	_, err := s.repo.CompleteSession(ctx, &CompleteSessionInput{
		SessionID:   session.ID,
		CompletedAt: s.testNow.Add(time.Hour),
		DebitEntry:  debit,
		CreditEntry: credit,
	})
	s.Require().NoError(err)

	// A second completion observes COMPLETED and must not bill again
	secondDebit, secondCredit := s.transferEntries(session.ID)
	secondDebit.ID = "entry-debit-2"
	secondCredit.ID = "entry-credit-2"

	_, err = s.repo.CompleteSession(ctx, &CompleteSessionInput{
		SessionID:   session.ID,
		CompletedAt: s.testNow.Add(2 * time.Hour),
		DebitEntry:  secondDebit,
		CreditEntry: secondCredit,
	})
	s.ErrorIs(err, ErrStatusConflict)

	learnerBalance, err := s.ledger.GetBalance(ctx, &ledgerRepo.GetBalanceInput{UserID: "learner-1"})
	s.Require().NoError(err)
	s.Equal(int64(-1), learnerBalance.Balance)
}

func (s *RedisRepositoryTestSuite) TestCompleteSessionRejectsNonConfirmed() {
	session := s.createTestSession(models.SessionStatusPending)
	debit, credit := s.transferEntries(session.ID)

	_, err := s.repo.CompleteSession(context.Background(), &CompleteSessionInput{
		SessionID:   session.ID,
		CompletedAt: s.testNow,
		DebitEntry:  debit,
		CreditEntry: credit,
	})
	s.ErrorIs(err, ErrStatusConflict)

	// No partial ledger entries are visible
	balance, err := s.ledger.GetBalance(context.Background(), &ledgerRepo.GetBalanceInput{UserID: "learner-1"})
	s.Require().NoError(err)
	s.Equal(int64(0), balance.Balance)
}

func (s *RedisRepositoryTestSuite) TestCompleteSessionRejectsUnbalancedEntries() {
	session := s.createTestSession(models.SessionStatusConfirmed)
	debit, credit := s.transferEntries(session.ID)
	credit.Amount = 2

	_, err := s.repo.CompleteSession(context.Background(), &CompleteSessionInput{
		SessionID:   session.ID,
		CompletedAt: s.testNow,
		DebitEntry:  debit,
		CreditEntry: credit,
	})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestCreateSessionRejectsMismatchedBooking() {
	err := s.repo.CreateSession(context.Background(), &CreateSessionInput{
		Session: &models.Session{ID: "session-1", HostID: "host-1", LearnerID: "learner-1", CreatedAt: s.testNow},
		Booking: &models.Booking{ID: "booking-1", SessionID: "other-session"},
	})
	s.Error(err)
}
