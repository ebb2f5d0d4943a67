package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/skillverse/skillverse/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
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

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

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

func (s *RedisRepositoryTestSuite) entry(id, userID string, amount int64, kind models.LedgerEntryKind, at time.Time) *models.LedgerEntry {
	return &models.LedgerEntry{
		ID:          id,
		UserID:      userID,
		Amount:      amount,
		Kind:        kind,
		ReferenceID: "ref-" + id,
		CreatedAt:   at,
	}
}

func (s *RedisRepositoryTestSuite) TestAppendAndBalance() {
	ctx := context.Background()

	err := s.repo.AppendEntry(ctx, &AppendEntryInput{
		Entry: s.entry("entry-1", "user-1", 3, models.LedgerEntryKindPurchased, s.testNow),
	})
	s.Require().NoError(err)

	err = s.repo.AppendEntry(ctx, &AppendEntryInput{
		Entry: s.entry("entry-2", "user-1", -1, models.LedgerEntryKindSpent, s.testNow.Add(time.Minute)),
	})
	s.Require().NoError(err)

	balance, err := s.repo.GetBalance(ctx, &GetBalanceInput{UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal(int64(2), balance.Balance)
}

func (s *RedisRepositoryTestSuite) TestBalanceForUnknownUserIsZero() {
	balance, err := s.repo.GetBalance(context.Background(), &GetBalanceInput{UserID: "nobody"})
	s.Require().NoError(err)
	s.Equal(int64(0), balance.Balance)
}

func (s *RedisRepositoryTestSuite) TestBalanceMatchesLogAfterManyAppends() {
	ctx := context.Background()

	var expected int64
	for i := 0; i < 10; i++ {
		amount := int64(1)
		kind := models.LedgerEntryKindEarned
		if i%3 == 0 {
			amount = -1
			kind = models.LedgerEntryKindSpent
		}
		expected += amount

		err := s.repo.AppendEntry(ctx, &AppendEntryInput{
			Entry: s.entry(fmt.Sprintf("entry-%d", i), "user-1", amount, kind, s.testNow.Add(time.Duration(i)*time.Minute)),
		})
		s.Require().NoError(err)
	}

	balance, err := s.repo.GetBalance(ctx, &GetBalanceInput{UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal(expected, balance.Balance)

	// The cache and the log agree
	reconciled, err := s.repo.Reconcile(ctx, &ReconcileInput{UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal(expected, reconciled.LogBalance)
	s.Equal(expected, reconciled.CachedBalance)
	s.False(reconciled.Repaired)
}

func (s *RedisRepositoryTestSuite) TestGetEntriesForUserNewestFirst() {
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := s.repo.AppendEntry(ctx, &AppendEntryInput{
			Entry: s.entry(fmt.Sprintf("entry-%d", i), "user-1", 1, models.LedgerEntryKindEarned, s.testNow.Add(time.Duration(i)*time.Minute)),
		})
		s.Require().NoError(err)
	}

	output, err := s.repo.GetEntriesForUser(ctx, &GetEntriesForUserInput{
		UserID: "user-1",
		Page:   1,
		Limit:  3,
	})
	s.Require().NoError(err)
	s.Require().Len(output.Entries, 3)
	s.Equal("entry-4", output.Entries[0].ID)
	s.Equal("entry-3", output.Entries[1].ID)
	s.Equal("entry-2", output.Entries[2].ID)

	// Second page picks up where the first left off
	output, err = s.repo.GetEntriesForUser(ctx, &GetEntriesForUserInput{
		UserID: "user-1",
		Page:   2,
		Limit:  3,
	})
	s.Require().NoError(err)
	s.Require().Len(output.Entries, 2)
	s.Equal("entry-1", output.Entries[0].ID)
	s.Equal("entry-0", output.Entries[1].ID)
}

func (s *RedisRepositoryTestSuite) TestGetEntriesForUserEmpty() {
	output, err := s.repo.GetEntriesForUser(context.Background(), &GetEntriesForUserInput{
		UserID: "user-1",
		Page:   1,
		Limit:  10,
	})
	s.Require().NoError(err)
	s.Empty(output.Entries)
}

func (s *RedisRepositoryTestSuite) TestGetEntriesForUserRejectsBadPagination() {
	_, err := s.repo.GetEntriesForUser(context.Background(), &GetEntriesForUserInput{
		UserID: "user-1",
		Page:   0,
		Limit:  10,
	})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestReconcileRepairsDriftedCache() {
	ctx := context.Background()

	err := s.repo.AppendEntry(ctx, &AppendEntryInput{
		Entry: s.entry("entry-1", "user-1", 5, models.LedgerEntryKindPurchased, s.testNow),
	})
	s.Require().NoError(err)

	// Corrupt the cache behind the repository's back
	s.Require().NoError(s.client.Set(ctx, BalanceKey("user-1"), 42, 0).Err())

	output, err := s.repo.Reconcile(ctx, &ReconcileInput{UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal(int64(5), output.LogBalance)
	s.Equal(int64(42), output.CachedBalance)
	s.True(output.Repaired)

	// The repaired cache now serves reads
	balance, err := s.repo.GetBalance(ctx, &GetBalanceInput{UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal(int64(5), balance.Balance)
}

func (s *RedisRepositoryTestSuite) TestAppendRejectsIncompleteEntries() {
	err := s.repo.AppendEntry(context.Background(), &AppendEntryInput{
		Entry: &models.LedgerEntry{UserID: "user-1", Amount: 1},
	})
	s.Error(err)

	err = s.repo.AppendEntry(context.Background(), nil)
	s.Error(err)
}
