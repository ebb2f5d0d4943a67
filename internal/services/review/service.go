package review

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/skillverse/skillverse/internal/models"
	reviewRepo "github.com/skillverse/skillverse/internal/repositories/review"
	sessionRepo "github.com/skillverse/skillverse/internal/repositories/session"
	userRepo "github.com/skillverse/skillverse/internal/repositories/user"
)

// service implements the Service interface
type service struct {
	config      *Config
	reviewRepo  reviewRepo.Repository
	sessionRepo sessionRepo.Repository
	userRepo    userRepo.Repository
}

// New creates a new review service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.ReviewRepo == nil {
		return nil, ErrNilReviewRepo
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.UserRepo == nil {
		return nil, ErrNilUserRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		config:      cfg,
		reviewRepo:  cfg.ReviewRepo,
		sessionRepo: cfg.SessionRepo,
		userRepo:    cfg.UserRepo,
	}, nil
}

// Submit stores exactly one review for a completed session. The reviewee is
// the other participant. After the review is stored the reviewee's average
// rating is recomputed; that derived statistic is not part of the same
// atomic unit and a failure there is logged, not returned, since
// RecomputeRating can repair it at any time.
func (s *service) Submit(ctx context.Context, input *SubmitInput) (*SubmitOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{SessionID: input.SessionID})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if session.Status != models.SessionStatusCompleted {
		return nil, ErrNotCompleted
	}

	if !session.IsParticipant(input.ReviewerID) {
		return nil, ErrNotParticipant
	}

	review := &models.Review{
		ID:         s.config.UUIDGenerator.NewUUID(),
		SessionID:  session.ID,
		ReviewerID: input.ReviewerID,
		RevieweeID: session.OtherParticipant(input.ReviewerID),
		Rating:     input.Rating,
		Comment:    input.Comment,
		CreatedAt:  s.config.Clock.Now(),
	}

	if err := s.reviewRepo.SaveReview(ctx, &reviewRepo.SaveReviewInput{Review: review}); err != nil {
		if errors.Is(err, reviewRepo.ErrReviewExists) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	average, err := s.recomputeRating(ctx, review.RevieweeID)
	if err != nil {
		log.Printf("failed to recompute rating for user %s: %v", review.RevieweeID, err)
	}

	return &SubmitOutput{
		Review:        review,
		AverageRating: average,
	}, nil
}

// ListForUser retrieves all reviews a user has received, newest first
func (s *service) ListForUser(ctx context.Context, input *ListForUserInput) (*ListForUserOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	output, err := s.reviewRepo.GetReviewsForReviewee(ctx, &reviewRepo.GetReviewsForRevieweeInput{
		RevieweeID: input.UserID,
	})
	if err != nil {
		return nil, err
	}

	return &ListForUserOutput{Reviews: output.Reviews}, nil
}

// RecomputeRating recomputes a user's average rating from their stored
// reviews. The computation is idempotent: retrying after a failure converges
// on the same value.
func (s *service) RecomputeRating(ctx context.Context, input *RecomputeRatingInput) (*RecomputeRatingOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	average, err := s.recomputeRating(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &RecomputeRatingOutput{AverageRating: average}, nil
}

func (s *service) recomputeRating(ctx context.Context, userID string) (float64, error) {
	output, err := s.reviewRepo.GetReviewsForReviewee(ctx, &reviewRepo.GetReviewsForRevieweeInput{
		RevieweeID: userID,
	})
	if err != nil {
		return 0, err
	}

	if len(output.Reviews) == 0 {
		return 0, nil
	}

	var sum int
	for _, r := range output.Reviews {
		sum += r.Rating
	}

	// Arithmetic mean rounded to two decimal places
	average := math.Round(float64(sum)/float64(len(output.Reviews))*100) / 100

	if err := s.userRepo.SetAverageRating(ctx, &userRepo.SetAverageRatingInput{
		UserID:        userID,
		AverageRating: average,
	}); err != nil {
		return average, err
	}

	return average, nil
}
