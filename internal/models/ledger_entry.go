package models

import (
	"time"
)

// LedgerEntryKind represents the business reason for a credit movement
type LedgerEntryKind string

const (
	// LedgerEntryKindEarned indicates credits earned by hosting a completed session
	LedgerEntryKindEarned LedgerEntryKind = "EARNED"

	// LedgerEntryKindSpent indicates credits spent on a completed session
	LedgerEntryKindSpent LedgerEntryKind = "SPENT"

	// LedgerEntryKindPurchased indicates credits bought through the purchase flow
	LedgerEntryKindPurchased LedgerEntryKind = "PURCHASED"

	// LedgerEntryKindRefund indicates credits returned to a user
	LedgerEntryKindRefund LedgerEntryKind = "REFUND"
)

// LedgerEntry records one immutable, signed credit movement for a user.
// Entries are append-only; a user's balance is the sum of their amounts.
type LedgerEntry struct {
	// ID is the unique identifier for the entry
	ID string

	// UserID is the user the credit movement belongs to
	UserID string

	// Amount is the signed number of whole credits moved
	Amount int64

	// Kind is why the credits moved
	Kind LedgerEntryKind

	// ReferenceID points at the event that caused the movement,
	// typically a session ID or a purchase ID
	ReferenceID string

	// CreatedAt is when the entry was appended
	CreatedAt time.Time
}
