package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fajarprasetia/smartone-finance/internal/apperrors"
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	portsrepo "github.com/fajarprasetia/smartone-finance/internal/core/ports/repositories"
	portssvc "github.com/fajarprasetia/smartone-finance/internal/core/ports/services"
	"github.com/fajarprasetia/smartone-finance/internal/dto"
	"github.com/fajarprasetia/smartone-finance/internal/middleware"
	"github.com/fajarprasetia/smartone-finance/internal/utils/accounting"
	"github.com/fajarprasetia/smartone-finance/internal/utils/pagination"
)

var (
	ErrEntryMinItems    = fmt.Errorf("%w: journal entry must have at least two line items", apperrors.ErrValidation)
	ErrEntryDateMissing = fmt.Errorf("%w: journal entry date is required", apperrors.ErrValidation)
	ErrAlreadyCancelled = fmt.Errorf("%w: journal entry is already cancelled", apperrors.ErrValidation)
)

// entrySortColumns whitelists the sortBy query values against SQL columns.
var entrySortColumns = map[string]string{
	"date":        "entry_date",
	"entryNumber": "entry_number",
	"status":      "status",
	"createdAt":   "created_at",
}

// journalService is the posting engine: the only path by which journal
// entries are written and account balances change.
type journalService struct {
	journalRepo portsrepo.JournalEntryRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	periodRepo  portsrepo.PeriodRepositoryFacade
}

// NewJournalService creates the posting engine service.
func NewJournalService(journalRepo portsrepo.JournalEntryRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, periodRepo portsrepo.PeriodRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// requireOpenPeriod fetches a period and rejects when missing or closed.
func (s *journalService) requireOpenPeriod(ctx context.Context, periodID string) (*domain.FinancialPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrPeriodNotFound, periodID)
		}
		return nil, fmt.Errorf("failed to fetch period %s: %w", periodID, err)
	}
	if period.IsClosed() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrPeriodClosed, period.Name)
	}
	return period, nil
}

// buildItems converts request lines into domain items and validates the
// double-entry invariant.
func (s *journalService) buildItems(entryID string, reqItems []dto.JournalEntryItemRequest, userID string, now time.Time) ([]domain.JournalEntryItem, error) {
	if len(reqItems) < 2 {
		return nil, ErrEntryMinItems
	}

	items := make([]domain.JournalEntryItem, len(reqItems))
	for i, itemReq := range reqItems {
		items[i] = domain.JournalEntryItem{
			ItemID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   itemReq.AccountID,
			Description: itemReq.Description,
			Debit:       itemReq.Debit,
			Credit:      itemReq.Credit,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := accounting.ValidateEntryBalance(items); err != nil {
		return nil, err
	}
	return items, nil
}

// resolveAccounts fetches the accounts referenced by the items, ensuring
// each exists and is active, and decorates items with account code/name.
func (s *journalService) resolveAccounts(ctx context.Context, items []domain.JournalEntryItem) (map[string]domain.Account, error) {
	accountIDs := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.AccountID]; !ok {
			seen[item.AccountID] = struct{}{}
			accountIDs = append(accountIDs, item.AccountID)
		}
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, acc.Code)
		}
	}

	for i := range items {
		acc := accountsMap[items[i].AccountID]
		items[i].AccountCode = acc.Code
		items[i].AccountName = acc.Name
	}
	return accountsMap, nil
}

func accountTypes(accounts map[string]domain.Account) map[string]domain.AccountType {
	types := make(map[string]domain.AccountType, len(accounts))
	for id, acc := range accounts {
		types[id] = acc.AccountType
	}
	return types
}

// CreateEntry validates and persists a new journal entry. When status is
// POSTED the account deltas are applied inside the same transaction as the
// insert.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Date.IsZero() {
		return nil, ErrEntryDateMissing
	}

	status := domain.Draft
	if req.Status != nil {
		status = *req.Status
	}
	if status != domain.Draft && status != domain.Posted {
		return nil, fmt.Errorf("%w: entries may only be created as DRAFT or POSTED", apperrors.ErrValidation)
	}

	if _, err := s.requireOpenPeriod(ctx, req.PeriodID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	items, err := s.buildItems(entryID, req.Items, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	accountsMap, err := s.resolveAccounts(ctx, items)
	if err != nil {
		return nil, err
	}

	var balanceChanges map[string]decimal.Decimal
	if status == domain.Posted {
		balanceChanges, err = accounting.BalanceChanges(items, accountTypes(accountsMap))
		if err != nil {
			return nil, fmt.Errorf("failed to calculate balance changes: %w", err)
		}
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   req.Date,
		PeriodID:    req.PeriodID,
		Description: req.Description,
		Reference:   req.Reference,
		Status:      status,
		Items:       items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, &entry, balanceChanges); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("status", string(entry.Status)))
	return &entry, nil
}

// GetEntryByID retrieves an entry with its items and account detail.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	items, err := s.journalRepo.FindItemsByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items for entry %s: %w", entryID, err)
	}
	entry.Items = items
	return entry, nil
}

// ListEntries retrieves a filtered, sorted page of entries with their items,
// plus the unfiltered total count.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	page := pagination.Normalize(params.Page, params.PageSize, params.SortBy, params.SortDirection, "entry_date", entrySortColumns)

	filter := portsrepo.JournalEntryFilter{
		Search:        params.Search,
		PeriodID:      params.PeriodID,
		AccountID:     params.AccountID,
		DateFrom:      params.StartDate,
		DateTo:        params.EndDate,
		SortColumn:    page.SortBy,
		SortDirection: page.SortDirection,
		Limit:         page.PageSize,
		Offset:        page.Offset(),
	}
	if params.Status != "" {
		status := domain.EntryStatus(params.Status)
		filter.Status = &status
	}

	entries, total, err := s.journalRepo.ListEntries(ctx, filter)
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	if len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i, e := range entries {
			entryIDs[i] = e.EntryID
		}
		itemsMap, err := s.journalRepo.FindItemsByEntryIDs(ctx, entryIDs)
		if err != nil {
			// Continue without items rather than failing the whole request.
			logger.Warn("Failed to fetch items for listed entries", slog.String("error", err.Error()))
		} else {
			for i := range entries {
				entries[i].Items = itemsMap[entries[i].EntryID]
			}
		}
	}

	return entries, total, nil
}

// UpdateEntry edits a DRAFT entry, optionally replacing its items and/or
// transitioning it to POSTED (applying balance deltas exactly once) or
// CANCELLED. Posted entries reject everything except cancellation.
func (s *journalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Status == domain.Cancelled {
		return nil, ErrAlreadyCancelled
	}
	if entry.Status == domain.Posted {
		if req.Status != nil && *req.Status == domain.Cancelled {
			return s.CancelEntry(ctx, entryID, userID)
		}
		return nil, apperrors.ErrPostedImmutable
	}

	// The entry's current period gates the mutation, and so does any new one.
	if _, err := s.requireOpenPeriod(ctx, entry.PeriodID); err != nil {
		return nil, err
	}
	if req.PeriodID != nil && *req.PeriodID != entry.PeriodID {
		if _, err := s.requireOpenPeriod(ctx, *req.PeriodID); err != nil {
			return nil, err
		}
		entry.PeriodID = *req.PeriodID
	}

	if req.Date != nil {
		entry.EntryDate = *req.Date
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}

	now := time.Now().UTC()

	replaceItems := req.Items != nil
	items := entry.Items
	if replaceItems {
		items, err = s.buildItems(entry.EntryID, req.Items, userID, now)
		if err != nil {
			return nil, err
		}
	} else {
		items, err = s.journalRepo.FindItemsByEntryID(ctx, entry.EntryID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch items for entry %s: %w", entry.EntryID, err)
		}
	}

	accountsMap, err := s.resolveAccounts(ctx, items)
	if err != nil {
		return nil, err
	}

	var balanceChanges map[string]decimal.Decimal
	if req.Status != nil {
		switch *req.Status {
		case domain.Posted:
			// DRAFT -> POSTED applies deltas exactly once, inside the same
			// transaction as the header/item rewrite.
			balanceChanges, err = accounting.BalanceChanges(items, accountTypes(accountsMap))
			if err != nil {
				return nil, fmt.Errorf("failed to calculate balance changes: %w", err)
			}
			entry.Status = domain.Posted
		case domain.Cancelled:
			// DRAFT -> CANCELLED: nothing was ever applied, nothing to undo.
			entry.Status = domain.Cancelled
		case domain.Draft:
			// no transition
		default:
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *req.Status)
		}
	}

	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateEntry(ctx, *entry, items, balanceChanges, replaceItems); err != nil {
		logger.Error("Failed to update journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}

	entry.Items = items
	logger.Info("Journal entry updated", slog.String("entry_id", entryID), slog.String("status", string(entry.Status)))
	return entry, nil
}

// CancelEntry cancels an entry. A DRAFT simply flips status; a POSTED entry
// gets a posted reversing entry (debit/credit swapped) in the same
// transaction, so account balances return to their pre-posting values while
// the original lines stay untouched for audit.
func (s *journalService) CancelEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Status == domain.Cancelled {
		return nil, ErrAlreadyCancelled
	}

	now := time.Now().UTC()

	if entry.Status == domain.Draft {
		if err := s.journalRepo.UpdateEntryStatus(ctx, entryID, domain.Cancelled, userID, now); err != nil {
			return nil, fmt.Errorf("failed to cancel draft entry: %w", err)
		}
		entry.Status = domain.Cancelled
		logger.Info("Draft journal entry cancelled", slog.String("entry_id", entryID))
		return entry, nil
	}

	// Reversals post into the original's period, so it must still be open.
	if _, err := s.requireOpenPeriod(ctx, entry.PeriodID); err != nil {
		return nil, err
	}

	originalItems, err := s.journalRepo.FindItemsByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items for entry %s: %w", entryID, err)
	}

	reversalID := uuid.NewString()
	reversalItems := make([]domain.JournalEntryItem, len(originalItems))
	for i, orig := range originalItems {
		reversalItems[i] = domain.JournalEntryItem{
			ItemID:      uuid.NewString(),
			EntryID:     reversalID,
			AccountID:   orig.AccountID,
			AccountCode: orig.AccountCode,
			AccountName: orig.AccountName,
			Description: orig.Description,
			Debit:       orig.Credit, // sides swapped
			Credit:      orig.Debit,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	accountsMap, err := s.resolveAccounts(ctx, reversalItems)
	if err != nil {
		return nil, err
	}
	balanceChanges, err := accounting.BalanceChanges(reversalItems, accountTypes(accountsMap))
	if err != nil {
		return nil, fmt.Errorf("failed to calculate reversal balance changes: %w", err)
	}

	reversal := domain.JournalEntry{
		EntryID:         reversalID,
		EntryDate:       entry.EntryDate,
		PeriodID:        entry.PeriodID,
		Description:     fmt.Sprintf("Reversal of %s", entry.EntryNumber),
		Reference:       entry.EntryNumber,
		Status:          domain.Posted,
		OriginalEntryID: &entry.EntryID,
		Items:           reversalItems,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	original := *entry
	original.Status = domain.Cancelled
	original.ReversingEntryID = &reversalID
	original.LastUpdatedAt = now
	original.LastUpdatedBy = userID

	if err := s.journalRepo.CancelEntry(ctx, original, &reversal, balanceChanges); err != nil {
		logger.Error("Failed to cancel posted journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to cancel journal entry: %w", err)
	}

	original.Items = originalItems
	logger.Info("Posted journal entry cancelled via reversal",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversalID),
		slog.String("reversal_entry_number", reversal.EntryNumber))
	return &original, nil
}

// DeleteEntry removes a DRAFT entry and its items. Posted entries are
// immutable; cancel them instead.
func (s *journalService) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}

	if entry.Status == domain.Posted {
		return apperrors.ErrPostedImmutable
	}

	if _, err := s.requireOpenPeriod(ctx, entry.PeriodID); err != nil {
		return err
	}

	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		logger.Error("Failed to delete journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return nil
}
