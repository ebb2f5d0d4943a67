package review

import "github.com/skillverse/skillverse/internal/models"

// SaveReviewInput contains parameters for storing a review
type SaveReviewInput struct {
	Review *models.Review
}

// GetReviewForSessionInput contains parameters for retrieving a session's review
type GetReviewForSessionInput struct {
	SessionID string
}

// GetReviewsForRevieweeInput contains parameters for retrieving a user's received reviews
type GetReviewsForRevieweeInput struct {
	RevieweeID string
}

// GetReviewsForRevieweeOutput contains the result of retrieving received reviews
type GetReviewsForRevieweeOutput struct {
	Reviews []*models.Review
}
