package ledger

// LedgerError is a custom error type for ledger-related errors
type LedgerError string

// Error implements the error interface
func (e LedgerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidAmount    LedgerError = "grant amount must be positive"
	ErrInvalidKind      LedgerError = "grants can only be PURCHASED or REFUND entries"
	ErrInvalidPage      LedgerError = "page must be positive"
	ErrNilConfig        LedgerError = "config cannot be nil"
	ErrNilLedgerRepo    LedgerError = "ledger repository cannot be nil"
	ErrNilClock         LedgerError = "clock cannot be nil"
	ErrNilUUIDGenerator LedgerError = "UUID generator cannot be nil"
)
