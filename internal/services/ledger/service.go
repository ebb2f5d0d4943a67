package ledger

import (
	"context"
	"errors"

	"github.com/skillverse/skillverse/internal/models"
	ledgerRepo "github.com/skillverse/skillverse/internal/repositories/ledger"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// service implements the Service interface
type service struct {
	config     *Config
	ledgerRepo ledgerRepo.Repository
}

// New creates a new ledger service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.LedgerRepo == nil {
		return nil, ErrNilLedgerRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.DefaultHistoryLimit == 0 {
		cfg.DefaultHistoryLimit = defaultHistoryLimit
	}

	if cfg.MaxHistoryLimit == 0 {
		cfg.MaxHistoryLimit = maxHistoryLimit
	}

	return &service{
		config:     cfg,
		ledgerRepo: cfg.LedgerRepo,
	}, nil
}

// Balance resolves a user's current credit balance. A user with no entries
// has balance zero.
func (s *service) Balance(ctx context.Context, input *BalanceInput) (*BalanceOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	output, err := s.ledgerRepo.GetBalance(ctx, &ledgerRepo.GetBalanceInput{UserID: input.UserID})
	if err != nil {
		return nil, err
	}

	return &BalanceOutput{Balance: output.Balance}, nil
}

// History retrieves a page of a user's ledger entries, newest first
func (s *service) History(ctx context.Context, input *HistoryInput) (*HistoryOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	page := input.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, ErrInvalidPage
	}

	limit := input.Limit
	if limit <= 0 {
		limit = s.config.DefaultHistoryLimit
	}
	if limit > s.config.MaxHistoryLimit {
		limit = s.config.MaxHistoryLimit
	}

	output, err := s.ledgerRepo.GetEntriesForUser(ctx, &ledgerRepo.GetEntriesForUserInput{
		UserID: input.UserID,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	return &HistoryOutput{
		Entries: output.Entries,
		Page:    page,
		Limit:   limit,
	}, nil
}

// Grant appends a PURCHASED or REFUND entry for a user
func (s *service) Grant(ctx context.Context, input *GrantInput) (*GrantOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if input.Kind != models.LedgerEntryKindPurchased && input.Kind != models.LedgerEntryKindRefund {
		return nil, ErrInvalidKind
	}

	entry := &models.LedgerEntry{
		ID:          s.config.UUIDGenerator.NewUUID(),
		UserID:      input.UserID,
		Amount:      input.Amount,
		Kind:        input.Kind,
		ReferenceID: input.ReferenceID,
		CreatedAt:   s.config.Clock.Now(),
	}

	if err := s.ledgerRepo.AppendEntry(ctx, &ledgerRepo.AppendEntryInput{Entry: entry}); err != nil {
		return nil, err
	}

	return &GrantOutput{Entry: entry}, nil
}

// Reconcile recomputes a user's balance from the log and repairs the cache
func (s *service) Reconcile(ctx context.Context, input *ReconcileInput) (*ReconcileOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	output, err := s.ledgerRepo.Reconcile(ctx, &ledgerRepo.ReconcileInput{UserID: input.UserID})
	if err != nil {
		return nil, err
	}

	return &ReconcileOutput{
		LogBalance:    output.LogBalance,
		CachedBalance: output.CachedBalance,
		Repaired:      output.Repaired,
	}, nil
}
