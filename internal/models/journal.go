package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus at the storage layer.
type EntryStatus string

// JournalEntry is the DB representation of a journal entry header row.
type JournalEntry struct {
	EntryID          string
	EntryNumber      string
	EntryDate        time.Time
	PeriodID         string
	Description      string
	Reference        string
	Status           EntryStatus
	OriginalEntryID  *string
	ReversingEntryID *string
	AuditFields
}

// JournalEntryItem is the DB representation of a ledger line row.
// AccountCode/AccountName are only populated by reads that join accounts.
type JournalEntryItem struct {
	ItemID      string
	EntryID     string
	AccountID   string
	AccountCode string
	AccountName string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	AuditFields
}
