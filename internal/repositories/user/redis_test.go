package user

import (
	"context"
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

func (s *RedisRepositoryTestSuite) TestSaveAndGetUser() {
	ctx := context.Background()
	user := &models.User{
		ID:        "user-1",
		Name:      "Ada",
		Headline:  "Distributed systems mentor",
		CreatedAt: s.testNow,
	}

	err := s.repo.SaveUser(ctx, &SaveUserInput{User: user})
	s.Require().NoError(err)

	got, err := s.repo.GetUser(ctx, &GetUserInput{UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal("Ada", got.Name)
	s.Equal("Distributed systems mentor", got.Headline)
	s.Equal(float64(0), got.AverageRating)
}

func (s *RedisRepositoryTestSuite) TestGetUserNotFound() {
	_, err := s.repo.GetUser(context.Background(), &GetUserInput{UserID: "missing"})
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *RedisRepositoryTestSuite) TestSetAverageRating() {
	ctx := context.Background()
	user := &models.User{
		ID:        "user-1",
		Name:      "Ada",
		CreatedAt: s.testNow,
	}

	err := s.repo.SaveUser(ctx, &SaveUserInput{User: user})
	s.Require().NoError(err)

	err = s.repo.SetAverageRating(ctx, &SetAverageRatingInput{
		UserID:        "user-1",
		AverageRating: 4.33,
	})
	s.Require().NoError(err)

	got, err := s.repo.GetUser(ctx, &GetUserInput{UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal(4.33, got.AverageRating)
	// The rest of the record is untouched
	s.Equal("Ada", got.Name)
}

func (s *RedisRepositoryTestSuite) TestSetAverageRatingUnknownUser() {
	err := s.repo.SetAverageRating(context.Background(), &SetAverageRatingInput{
		UserID:        "missing",
		AverageRating: 4.0,
	})
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *RedisRepositoryTestSuite) TestSaveUserValidation() {
	err := s.repo.SaveUser(context.Background(), nil)
	s.Error(err)

	err = s.repo.SaveUser(context.Background(), &SaveUserInput{User: &models.User{}})
	s.Error(err)
}
