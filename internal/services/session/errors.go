package session

// SessionError is a custom error type for session lifecycle errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound SessionError = "session not found"
	ErrNotHost         SessionError = "only the host can complete this session"
	ErrNotParticipant  SessionError = "user is not a participant in this session"
	ErrInvalidState    SessionError = "session is not in a valid state for this action"

	// ErrTransferFailed means the atomic completion transaction could not
	// commit. The session remains CONFIRMED, so the caller may retry.
	ErrTransferFailed SessionError = "completion transfer could not commit"

	ErrNilConfig        SessionError = "config cannot be nil"
	ErrNilSessionRepo   SessionError = "session repository cannot be nil"
	ErrNilClock         SessionError = "clock cannot be nil"
	ErrNilUUIDGenerator SessionError = "UUID generator cannot be nil"
)
