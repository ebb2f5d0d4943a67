package booking

// BookingError is a custom error type for booking-related errors
type BookingError string

// Error implements the error interface
func (e BookingError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSelfBooking          BookingError = "cannot book a session with yourself"
	ErrHostNotFound         BookingError = "host not found"
	ErrInsufficientCredits  BookingError = "insufficient credits"
	ErrInvalidDuration      BookingError = "session duration is below the minimum"
	ErrInvalidScheduledTime BookingError = "scheduled time is missing or malformed"
	ErrSessionNotFound      BookingError = "session not found"
	ErrNotParticipant       BookingError = "user is not a participant in this session"
	ErrNotHost              BookingError = "only the host can perform this action"
	ErrInvalidState         BookingError = "session is not in a valid state for this transition"
	ErrNilConfig            BookingError = "config cannot be nil"
	ErrNilSessionRepo       BookingError = "session repository cannot be nil"
	ErrNilLedgerRepo        BookingError = "ledger repository cannot be nil"
	ErrNilUserRepo          BookingError = "user repository cannot be nil"
	ErrNilClock             BookingError = "clock cannot be nil"
	ErrNilUUIDGenerator     BookingError = "UUID generator cannot be nil"
)
