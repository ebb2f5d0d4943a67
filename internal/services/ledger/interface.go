package ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/skillverse/skillverse/internal/services/ledger Service

import "context"

// Service defines the interface for reading and extending the credit ledger
type Service interface {
	// Balance resolves a user's current credit balance
	Balance(ctx context.Context, input *BalanceInput) (*BalanceOutput, error)

	// History retrieves a page of a user's ledger entries, newest first
	History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error)

	// Grant appends a PURCHASED or REFUND entry. This is the trusted entry
	// point for the external purchase collaborator; session completions post
	// their entries through the completion coordinator instead.
	Grant(ctx context.Context, input *GrantInput) (*GrantOutput, error)

	// Reconcile recomputes a user's balance from the log and repairs the
	// cached running balance if it has drifted
	Reconcile(ctx context.Context, input *ReconcileInput) (*ReconcileOutput, error)
}
