package review

import (
	"github.com/skillverse/skillverse/internal/common/clock"
	"github.com/skillverse/skillverse/internal/common/uuid"
	"github.com/skillverse/skillverse/internal/models"
	reviewRepo "github.com/skillverse/skillverse/internal/repositories/review"
	sessionRepo "github.com/skillverse/skillverse/internal/repositories/session"
	userRepo "github.com/skillverse/skillverse/internal/repositories/user"
)

// Config holds configuration for the review service
type Config struct {
	// Repository dependencies
	ReviewRepo  reviewRepo.Repository
	SessionRepo sessionRepo.Repository
	UserRepo    userRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// SubmitInput contains parameters for submitting a review
type SubmitInput struct {
	SessionID string

	// ReviewerID is the verified identity of the caller
	ReviewerID string

	// Rating is the score given, between 1 and 5 inclusive
	Rating int

	// Comment is optional free-form feedback
	Comment string
}

// SubmitOutput contains the stored review
type SubmitOutput struct {
	Review *models.Review

	// AverageRating is the reviewee's recomputed average, rounded to two
	// decimal places
	AverageRating float64
}

// ListForUserInput contains parameters for listing received reviews
type ListForUserInput struct {
	UserID string
}

// ListForUserOutput contains the reviews a user has received
type ListForUserOutput struct {
	Reviews []*models.Review
}

// RecomputeRatingInput contains parameters for recomputing an average rating
type RecomputeRatingInput struct {
	UserID string
}

// RecomputeRatingOutput contains the recomputed average rating
type RecomputeRatingOutput struct {
	AverageRating float64
}
