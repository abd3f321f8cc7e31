package dto

import (
	"time"

	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	"github.com/fajarprasetia/smartone-finance/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// JournalEntryItemRequest is one ledger line in a create/update payload.
type JournalEntryItemRequest struct {
	AccountID   string          `json:"accountId" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateJournalEntryRequest is the payload for creating a journal entry.
// Status may be DRAFT (default) or POSTED; posting at creation time applies
// balances immediately.
type CreateJournalEntryRequest struct {
	Date        time.Time                 `json:"date" binding:"required"`
	PeriodID    string                    `json:"periodId" binding:"required"`
	Description string                    `json:"description"`
	Reference   string                    `json:"reference"`
	Status      *domain.EntryStatus       `json:"status"`
	Items       []JournalEntryItemRequest `json:"items" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest carries partial updates; nil fields are kept.
// Items, when present, replace the full line set.
type UpdateJournalEntryRequest struct {
	Date        *time.Time                `json:"date"`
	PeriodID    *string                   `json:"periodId"`
	Description *string                   `json:"description"`
	Reference   *string                   `json:"reference"`
	Status      *domain.EntryStatus       `json:"status"`
	Items       []JournalEntryItemRequest `json:"items"`
}

// ListJournalEntriesParams are the list query parameters.
type ListJournalEntriesParams struct {
	Search        string     `form:"search"`
	PeriodID      string     `form:"period"`
	Status        string     `form:"status"`
	AccountID     string     `form:"accountId"`
	StartDate     *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate       *time.Time `form:"endDate" time_format:"2006-01-02"`
	Page          int        `form:"page"`
	PageSize      int        `form:"pageSize"`
	SortBy        string     `form:"sortBy"`
	SortDirection string     `form:"sortDirection"`
}

// JournalEntryItemResponse is the API representation of a ledger line.
type JournalEntryItemResponse struct {
	ItemID      string          `json:"itemID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode,omitempty"`
	AccountName string          `json:"accountName,omitempty"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntryResponse is the API representation of a journal entry.
type JournalEntryResponse struct {
	EntryID          string                     `json:"entryID"`
	EntryNumber      string                     `json:"entryNumber"`
	Date             time.Time                  `json:"date"`
	PeriodID         string                     `json:"periodID"`
	Description      string                     `json:"description"`
	Reference        string                     `json:"reference,omitempty"`
	Status           domain.EntryStatus         `json:"status"`
	OriginalEntryID  *string                    `json:"originalEntryID,omitempty"`
	ReversingEntryID *string                    `json:"reversingEntryID,omitempty"`
	Items            []JournalEntryItemResponse `json:"items"`
	TotalDebit       decimal.Decimal            `json:"totalDebit"`
	TotalCredit      decimal.Decimal            `json:"totalCredit"`
	CreatedAt        time.Time                  `json:"createdAt"`
	CreatedBy        string                     `json:"createdBy"`
}

// PaginationResponse is the page envelope on list endpoints.
type PaginationResponse struct {
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}

// JournalEntryListFilters carries the filter option sets the list screens render.
type JournalEntryListFilters struct {
	Periods  []PeriodResponse `json:"periods"`
	Statuses []string         `json:"statuses"`
}

// ListJournalEntriesResponse is the journal entry list envelope.
type ListJournalEntriesResponse struct {
	Entries    []JournalEntryResponse  `json:"entries"`
	Pagination PaginationResponse      `json:"pagination"`
	Filters    JournalEntryListFilters `json:"filters"`
}

// ToJournalEntryItemResponse converts a domain ledger line to its API shape.
func ToJournalEntryItemResponse(item *domain.JournalEntryItem) JournalEntryItemResponse {
	return JournalEntryItemResponse{
		ItemID:      item.ItemID,
		AccountID:   item.AccountID,
		AccountCode: item.AccountCode,
		AccountName: item.AccountName,
		Description: item.Description,
		Debit:       item.Debit,
		Credit:      item.Credit,
	}
}

// ToJournalEntryResponse converts a domain journal entry to its API shape.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	items := make([]JournalEntryItemResponse, len(e.Items))
	for i := range e.Items {
		items[i] = ToJournalEntryItemResponse(&e.Items[i])
	}
	totalDebit, totalCredit := accounting.EntryTotals(e.Items)
	return JournalEntryResponse{
		EntryID:          e.EntryID,
		EntryNumber:      e.EntryNumber,
		Date:             e.EntryDate,
		PeriodID:         e.PeriodID,
		Description:      e.Description,
		Reference:        e.Reference,
		Status:           e.Status,
		OriginalEntryID:  e.OriginalEntryID,
		ReversingEntryID: e.ReversingEntryID,
		Items:            items,
		TotalDebit:       totalDebit,
		TotalCredit:      totalCredit,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
}
