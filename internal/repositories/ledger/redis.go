package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/skillverse/skillverse/internal/models"
)

const (
	// Key prefixes for Redis
	entryKeyPrefix       = "ledger:entry:"
	userEntriesKeyPrefix = "ledger:user:"
	balanceKeyPrefix     = "ledger:balance:"
)

// EntryKey returns the Redis key holding one ledger entry.
func EntryKey(entryID string) string {
	return entryKeyPrefix + entryID
}

// UserEntriesKey returns the Redis key of a user's entry index, a sorted set
// scored by entry creation time.
func UserEntriesKey(userID string) string {
	return userEntriesKeyPrefix + userID
}

// BalanceKey returns the Redis key of a user's cached running balance.
func BalanceKey(userID string) string {
	return balanceKeyPrefix + userID
}

// StageEntry stages the writes for one ledger entry onto a pipeline: the
// entry record, the user's time-ordered index, and the cached running
// balance. Every append, whether standalone or part of a session completion
// transaction, must go through here so the cache can never miss an entry.
func StageEntry(ctx context.Context, pipe redis.Pipeliner, entry *models.LedgerEntry) error {
	if entry == nil {
		return errors.New("entry cannot be nil")
	}

	if entry.ID == "" {
		return errors.New("ledger entry ID cannot be empty")
	}

	if entry.CreatedAt.IsZero() {
		return errors.New("ledger entry timestamp cannot be zero")
	}

	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger entry: %w", err)
	}

	pipe.Set(ctx, EntryKey(entry.ID), entryJSON, 0)
	pipe.ZAdd(ctx, UserEntriesKey(entry.UserID), redis.Z{
		Score:  float64(entry.CreatedAt.UnixNano()),
		Member: entry.ID,
	})
	pipe.IncrBy(ctx, BalanceKey(entry.UserID), entry.Amount)

	return nil
}

// Config holds configuration for the Redis ledger repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed ledger repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// AppendEntry durably appends one immutable entry to the ledger
func (r *redisRepository) AppendEntry(ctx context.Context, input *AppendEntryInput) error {
	if input == nil || input.Entry == nil {
		return errors.New("input and entry cannot be nil")
	}

	// All three writes commit as one MULTI/EXEC unit
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		return StageEntry(ctx, pipe, input.Entry)
	})
	if err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}

	return nil
}

// GetBalance returns the user's current credit balance. The cached running
// balance is the fast path; a missing cache is recomputed from the log, which
// remains the auditable source of truth.
func (r *redisRepository) GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	cached, err := r.client.Get(ctx, BalanceKey(input.UserID)).Result()
	if err == nil {
		balance, parseErr := strconv.ParseInt(cached, 10, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("failed to parse cached balance: %w", parseErr)
		}
		return &GetBalanceOutput{Balance: balance}, nil
	}

	if err != redis.Nil {
		return nil, fmt.Errorf("failed to get cached balance: %w", err)
	}

	// Cache miss: recompute from the log and seed the cache. SETNX so a
	// concurrent append's INCRBY is never clobbered.
	balance, err := r.sumEntries(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := r.client.SetNX(ctx, BalanceKey(input.UserID), balance, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to seed balance cache: %w", err)
	}

	return &GetBalanceOutput{Balance: balance}, nil
}

// GetEntriesForUser retrieves a page of a user's ledger entries, newest first
func (r *redisRepository) GetEntriesForUser(ctx context.Context, input *GetEntriesForUserInput) (*GetEntriesForUserOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	if input.Page < 1 || input.Limit < 1 {
		return nil, errors.New("page and limit must be positive")
	}

	start := int64(input.Page-1) * int64(input.Limit)
	stop := start + int64(input.Limit) - 1

	entryIDs, err := r.client.ZRevRange(ctx, UserEntriesKey(input.UserID), start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get entry IDs for user: %w", err)
	}

	if len(entryIDs) == 0 {
		return &GetEntriesForUserOutput{
			Entries: []*models.LedgerEntry{},
		}, nil
	}

	// Fetch the entries in one round trip, preserving newest-first order
	pipe := r.client.Pipeline()
	entryCommands := make([]*redis.StringCmd, len(entryIDs))
	for i, entryID := range entryIDs {
		entryCommands[i] = pipe.Get(ctx, EntryKey(entryID))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}

	entries := make([]*models.LedgerEntry, 0, len(entryIDs))
	for i, cmd := range entryCommands {
		entryJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Index member without a record should not happen for an
				// append-only log; skip rather than fail the whole read
				continue
			}
			return nil, fmt.Errorf("failed to get ledger entry %s: %w", entryIDs[i], err)
		}

		var entry models.LedgerEntry
		if err := json.Unmarshal([]byte(entryJSON), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ledger entry %s: %w", entryIDs[i], err)
		}

		entries = append(entries, &entry)
	}

	return &GetEntriesForUserOutput{
		Entries: entries,
	}, nil
}

// Reconcile recomputes the user's balance from the append-only log and
// overwrites the cached running balance if the two disagree
func (r *redisRepository) Reconcile(ctx context.Context, input *ReconcileInput) (*ReconcileOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	logBalance, err := r.sumEntries(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	cachedBalance := int64(0)
	cached, err := r.client.Get(ctx, BalanceKey(input.UserID)).Result()
	if err == nil {
		cachedBalance, err = strconv.ParseInt(cached, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse cached balance: %w", err)
		}
	} else if err != redis.Nil {
		return nil, fmt.Errorf("failed to get cached balance: %w", err)
	}

	output := &ReconcileOutput{
		LogBalance:    logBalance,
		CachedBalance: cachedBalance,
	}

	if logBalance != cachedBalance {
		if err := r.client.Set(ctx, BalanceKey(input.UserID), logBalance, 0).Err(); err != nil {
			return nil, fmt.Errorf("failed to repair balance cache: %w", err)
		}
		output.Repaired = true
	}

	return output, nil
}

// sumEntries computes the signed sum of every entry in a user's log
func (r *redisRepository) sumEntries(ctx context.Context, userID string) (int64, error) {
	entryIDs, err := r.client.ZRange(ctx, UserEntriesKey(userID), 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get entry IDs for user: %w", err)
	}

	if len(entryIDs) == 0 {
		return 0, nil
	}

	pipe := r.client.Pipeline()
	entryCommands := make([]*redis.StringCmd, len(entryIDs))
	for i, entryID := range entryIDs {
		entryCommands[i] = pipe.Get(ctx, EntryKey(entryID))
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return 0, fmt.Errorf("failed to get ledger entries: %w", err)
	}

	var total int64
	for i, cmd := range entryCommands {
		entryJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return 0, fmt.Errorf("failed to get ledger entry %s: %w", entryIDs[i], err)
		}

		var entry models.LedgerEntry
		if err := json.Unmarshal([]byte(entryJSON), &entry); err != nil {
			return 0, fmt.Errorf("failed to unmarshal ledger entry %s: %w", entryIDs[i], err)
		}

		total += entry.Amount
	}

	return total, nil
}
