package user

import "github.com/skillverse/skillverse/internal/models"

// SaveUserInput contains parameters for saving a user
type SaveUserInput struct {
	User *models.User
}

// GetUserInput contains parameters for retrieving a user
type GetUserInput struct {
	UserID string
}

// SetAverageRatingInput contains parameters for updating a user's average rating
type SetAverageRatingInput struct {
	UserID        string
	AverageRating float64
}
