package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Posted    EntryStatus = "POSTED"
	Cancelled EntryStatus = "CANCELLED"
)

// JournalEntry is a balanced, dated set of debit/credit lines recording one
// business event, tied to exactly one financial period.
//
// Status moves DRAFT -> POSTED -> CANCELLED (each transition one-way).
// Cancelling a posted entry never mutates its lines; the posting engine
// creates a mirrored reversing entry and links the two.
type JournalEntry struct {
	EntryID          string      `json:"entryID"`     // Primary key (UUID)
	EntryNumber      string      `json:"entryNumber"` // e.g. JE-20240115-001, unique, allocated per day
	EntryDate        time.Time   `json:"entryDate"`
	PeriodID         string      `json:"periodID"`
	Description      string      `json:"description"`
	Reference        string      `json:"reference"`
	Status           EntryStatus `json:"status"`
	OriginalEntryID  *string     `json:"originalEntryID,omitempty"`  // Set on an auto-generated reversing entry
	ReversingEntryID *string     `json:"reversingEntryID,omitempty"` // Set on a cancelled entry that was reversed
	Items            []JournalEntryItem
	AuditFields
}

// JournalEntryItem is a single ledger line within an entry, affecting one
// account. The data model permits both sides to be non-zero, though
// conventional usage sets exactly one.
type JournalEntryItem struct {
	ItemID      string          `json:"itemID"` // Primary key (UUID)
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"` // Populated on reads joined with accounts
	AccountName string          `json:"accountName"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`  // >= 0
	Credit      decimal.Decimal `json:"credit"` // >= 0
	AuditFields
}
