package ledger

import "github.com/skillverse/skillverse/internal/models"

// AppendEntryInput contains parameters for appending a ledger entry
type AppendEntryInput struct {
	Entry *models.LedgerEntry
}

// GetBalanceInput contains parameters for reading a user's balance
type GetBalanceInput struct {
	UserID string
}

// GetBalanceOutput contains the result of reading a user's balance
type GetBalanceOutput struct {
	Balance int64
}

// GetEntriesForUserInput contains parameters for retrieving a page of entries
type GetEntriesForUserInput struct {
	UserID string

	// Page is 1-based
	Page int

	// Limit is the number of entries per page
	Limit int
}

// GetEntriesForUserOutput contains the result of retrieving a page of entries
type GetEntriesForUserOutput struct {
	Entries []*models.LedgerEntry
}

// ReconcileInput contains parameters for reconciling a user's balance
type ReconcileInput struct {
	UserID string
}

// ReconcileOutput contains the result of reconciling a user's balance
type ReconcileOutput struct {
	// LogBalance is the balance recomputed from the append-only log
	LogBalance int64

	// CachedBalance is the running balance that was cached before reconciling
	CachedBalance int64

	// Repaired indicates the cache had drifted and was overwritten
	Repaired bool
}
