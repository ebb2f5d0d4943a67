package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/skillverse/skillverse/internal/models"
)

const (
	// Key prefixes for Redis
	reviewKeyPrefix        = "review:"
	sessionReviewKeyPrefix = "session_review:"
	userReviewsKeyPrefix   = "user_reviews:"
)

var (
	// ErrReviewNotFound is returned when a review is not found
	ErrReviewNotFound = errors.New("review not found")

	// ErrReviewExists is returned when the session already has a review
	ErrReviewExists = errors.New("review already exists for session")
)

func reviewKey(reviewID string) string {
	return reviewKeyPrefix + reviewID
}

func sessionReviewKey(sessionID string) string {
	return sessionReviewKeyPrefix + sessionID
}

func userReviewsKey(revieweeID string) string {
	return userReviewsKeyPrefix + revieweeID
}

// Config holds configuration for the Redis review repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed review repository
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

// SaveReview stores a review. The session-to-review pointer is written under
// WATCH, so two concurrent submissions for the same session produce exactly
// one stored review; the loser gets ErrReviewExists.
func (r *redisRepository) SaveReview(ctx context.Context, input *SaveReviewInput) error {
	if input == nil || input.Review == nil {
		return errors.New("input and review cannot be nil")
	}

	rev := input.Review
	if rev.ID == "" || rev.SessionID == "" {
		return errors.New("review ID and session ID cannot be empty")
	}

	reviewJSON, err := json.Marshal(rev)
	if err != nil {
		return fmt.Errorf("failed to marshal review: %w", err)
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		_, err := tx.Get(ctx, sessionReviewKey(rev.SessionID)).Result()
		if err == nil {
			return ErrReviewExists
		}
		if err != redis.Nil {
			return fmt.Errorf("failed to check existing review: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, reviewKey(rev.ID), reviewJSON, 0)
			pipe.Set(ctx, sessionReviewKey(rev.SessionID), rev.ID, 0)
			pipe.ZAdd(ctx, userReviewsKey(rev.RevieweeID), redis.Z{
				Score:  float64(rev.CreatedAt.UnixNano()),
				Member: rev.ID,
			})
			return nil
		})
		return err
	}, sessionReviewKey(rev.SessionID))

	if err != nil {
		if err == redis.TxFailedErr {
			// A concurrent submission won the race
			return ErrReviewExists
		}
		return err
	}

	return nil
}

// GetReviewForSession retrieves the review for a session, if any
func (r *redisRepository) GetReviewForSession(ctx context.Context, input *GetReviewForSessionInput) (*models.Review, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	reviewID, err := r.client.Get(ctx, sessionReviewKey(input.SessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review ID for session: %w", err)
	}

	reviewJSON, err := r.client.Get(ctx, reviewKey(reviewID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	var review models.Review
	if err := json.Unmarshal([]byte(reviewJSON), &review); err != nil {
		return nil, fmt.Errorf("failed to unmarshal review: %w", err)
	}

	return &review, nil
}

// GetReviewsForReviewee retrieves all reviews a user has received, newest first
func (r *redisRepository) GetReviewsForReviewee(ctx context.Context, input *GetReviewsForRevieweeInput) (*GetReviewsForRevieweeOutput, error) {
	if input == nil || input.RevieweeID == "" {
		return nil, errors.New("input and reviewee ID cannot be empty")
	}

	reviewIDs, err := r.client.ZRevRange(ctx, userReviewsKey(input.RevieweeID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get review IDs for reviewee: %w", err)
	}

	if len(reviewIDs) == 0 {
		return &GetReviewsForRevieweeOutput{
			Reviews: []*models.Review{},
		}, nil
	}

	pipe := r.client.Pipeline()
	reviewCommands := make([]*redis.StringCmd, len(reviewIDs))
	for i, reviewID := range reviewIDs {
		reviewCommands[i] = pipe.Get(ctx, reviewKey(reviewID))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	reviews := make([]*models.Review, 0, len(reviewIDs))
	for i, cmd := range reviewCommands {
		reviewJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get review %s: %w", reviewIDs[i], err)
		}

		var review models.Review
		if err := json.Unmarshal([]byte(reviewJSON), &review); err != nil {
			return nil, fmt.Errorf("failed to unmarshal review %s: %w", reviewIDs[i], err)
		}

		reviews = append(reviews, &review)
	}

	return &GetReviewsForRevieweeOutput{
		Reviews: reviews,
	}, nil
}
