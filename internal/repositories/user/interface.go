package user

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/skillverse/skillverse/internal/repositories/user Repository

import (
	"context"

	"github.com/skillverse/skillverse/internal/models"
)

// Repository defines the interface for user data persistence. Identity and
// profile management are owned by an external subsystem; the core uses this
// boundary for the host-existence check and the derived average rating.
type Repository interface {
	// SaveUser persists a user
	SaveUser(ctx context.Context, input *SaveUserInput) error

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, input *GetUserInput) (*models.User, error)

	// SetAverageRating updates a user's derived average rating
	SetAverageRating(ctx context.Context, input *SetAverageRatingInput) error
}
