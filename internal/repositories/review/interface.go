package review

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/skillverse/skillverse/internal/repositories/review Repository

import (
	"context"

	"github.com/skillverse/skillverse/internal/models"
)

// Repository defines the interface for review persistence. At most one
// review ever exists per session.
type Repository interface {
	// SaveReview stores a review, enforcing the one-review-per-session rule.
	// A session that already has a review yields ErrReviewExists.
	SaveReview(ctx context.Context, input *SaveReviewInput) error

	// GetReviewForSession retrieves the review for a session, if any
	GetReviewForSession(ctx context.Context, input *GetReviewForSessionInput) (*models.Review, error)

	// GetReviewsForReviewee retrieves all reviews a user has received, newest first
	GetReviewsForReviewee(ctx context.Context, input *GetReviewsForRevieweeInput) (*GetReviewsForRevieweeOutput, error)
}
