package repositories

import (
	"context"
	"time"

	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryFilter narrows and orders ListEntries results.
type JournalEntryFilter struct {
	Search    string // matches entry number, description or reference
	PeriodID  string
	Status    *domain.EntryStatus
	AccountID string // entries containing at least one line on this account
	DateFrom  *time.Time
	DateTo    *time.Time

	SortColumn    string // validated SQL column
	SortDirection string // "asc" or "desc"
	Limit         int
	Offset        int
}

// JournalEntryRepositoryFacade provides access to journal entry storage.
// Every multi-row mutation runs in a single database transaction so partial
// writes are never observable.
type JournalEntryRepositoryFacade interface {
	// SaveEntry persists the entry and its items, allocating EntryNumber
	// under the unique constraint (retrying on collision) and applying
	// balanceChanges to the affected accounts when non-empty. The allocated
	// number is written back to entry.
	SaveEntry(ctx context.Context, entry *domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error

	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryItem, error)
	FindItemsByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryItem, error)
	ListEntries(ctx context.Context, filter JournalEntryFilter) ([]domain.JournalEntry, int64, error)

	// UpdateEntry rewrites the header and, when replaceItems is set, swaps
	// the full item set; balanceChanges are applied in the same transaction
	// (used by the DRAFT -> POSTED transition).
	UpdateEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalEntryItem, balanceChanges map[string]decimal.Decimal, replaceItems bool) error

	// UpdateEntryStatus flips only the status column (DRAFT -> CANCELLED).
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, userID string, now time.Time) error

	// CancelEntry atomically saves the posted reversing entry (allocating
	// its number and applying its balance changes) and marks the original
	// CANCELLED with a link to the reversal.
	CancelEntry(ctx context.Context, original domain.JournalEntry, reversal *domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error

	// DeleteEntry removes the entry and its items.
	DeleteEntry(ctx context.Context, entryID string) error
}
