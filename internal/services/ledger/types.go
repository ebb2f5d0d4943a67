package ledger

import (
	"github.com/skillverse/skillverse/internal/common/clock"
	"github.com/skillverse/skillverse/internal/common/uuid"
	"github.com/skillverse/skillverse/internal/models"
	ledgerRepo "github.com/skillverse/skillverse/internal/repositories/ledger"
)

// Config holds configuration for the ledger service
type Config struct {
	// DefaultHistoryLimit is used when a history request omits a limit;
	// defaults to 20
	DefaultHistoryLimit int

	// MaxHistoryLimit caps the page size of history requests; defaults to 100
	MaxHistoryLimit int

	// Repository dependencies
	LedgerRepo ledgerRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// BalanceInput contains parameters for resolving a balance
type BalanceInput struct {
	UserID string
}

// BalanceOutput contains the resolved balance
type BalanceOutput struct {
	Balance int64
}

// HistoryInput contains parameters for retrieving ledger history
type HistoryInput struct {
	UserID string

	// Page is 1-based; values below 1 are rejected
	Page int

	// Limit is the page size; 0 uses the default, larger values are capped
	Limit int
}

// HistoryOutput contains a page of ledger entries, newest first
type HistoryOutput struct {
	Entries []*models.LedgerEntry

	// Page and Limit echo the effective pagination used
	Page  int
	Limit int
}

// GrantInput contains parameters for appending a purchase or refund entry
type GrantInput struct {
	UserID string

	// Amount is the number of credits granted; must be positive
	Amount int64

	// Kind must be PURCHASED or REFUND
	Kind models.LedgerEntryKind

	// ReferenceID points at the purchase or refund event
	ReferenceID string
}

// GrantOutput contains the appended entry
type GrantOutput struct {
	Entry *models.LedgerEntry
}

// ReconcileInput contains parameters for reconciling a user's balance
type ReconcileInput struct {
	UserID string
}

// ReconcileOutput contains the result of reconciling a user's balance
type ReconcileOutput struct {
	LogBalance    int64
	CachedBalance int64
	Repaired      bool
}
