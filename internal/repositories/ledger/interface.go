package ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/skillverse/skillverse/internal/repositories/ledger Repository

import (
	"context"
)

// Repository defines the interface for credit ledger persistence.
// The ledger is append-only: entries are never updated or deleted, and a
// user's balance is the signed sum of all their entries.
type Repository interface {
	// AppendEntry durably appends one immutable entry and updates the
	// cached running balance in the same transaction
	AppendEntry(ctx context.Context, input *AppendEntryInput) error

	// GetBalance returns the user's current credit balance
	GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error)

	// GetEntriesForUser retrieves a page of a user's entries, newest first
	GetEntriesForUser(ctx context.Context, input *GetEntriesForUserInput) (*GetEntriesForUserOutput, error)

	// Reconcile recomputes the user's balance from the log and repairs the
	// cached running balance if it has drifted
	Reconcile(ctx context.Context, input *ReconcileInput) (*ReconcileOutput, error)
}
