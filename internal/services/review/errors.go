package review

// ReviewError is a custom error type for review-related errors
type ReviewError string

// Error implements the error interface
func (e ReviewError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound  ReviewError = "session not found"
	ErrNotCompleted     ReviewError = "reviews can only be left for completed sessions"
	ErrNotParticipant   ReviewError = "reviewer was not a participant in this session"
	ErrAlreadyReviewed  ReviewError = "a review has already been submitted for this session"
	ErrInvalidRating    ReviewError = "rating must be between 1 and 5"
	ErrNilConfig        ReviewError = "config cannot be nil"
	ErrNilReviewRepo    ReviewError = "review repository cannot be nil"
	ErrNilSessionRepo   ReviewError = "session repository cannot be nil"
	ErrNilUserRepo      ReviewError = "user repository cannot be nil"
	ErrNilClock         ReviewError = "clock cannot be nil"
	ErrNilUUIDGenerator ReviewError = "UUID generator cannot be nil"
)
