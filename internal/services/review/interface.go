package review

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/skillverse/skillverse/internal/services/review Service

import "context"

// Service defines the interface for the review gate
type Service interface {
	// Submit stores exactly one review for a completed session and
	// recomputes the reviewee's average rating
	Submit(ctx context.Context, input *SubmitInput) (*SubmitOutput, error)

	// ListForUser retrieves all reviews a user has received, newest first
	ListForUser(ctx context.Context, input *ListForUserInput) (*ListForUserOutput, error)

	// RecomputeRating recomputes a user's average rating from their stored
	// reviews; safe to retry at any time
	RecomputeRating(ctx context.Context, input *RecomputeRatingInput) (*RecomputeRatingOutput, error)
}
