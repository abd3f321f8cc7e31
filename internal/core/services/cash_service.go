package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fajarprasetia/smartone-finance/internal/apperrors"
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	portsrepo "github.com/fajarprasetia/smartone-finance/internal/core/ports/repositories"
	portssvc "github.com/fajarprasetia/smartone-finance/internal/core/ports/services"
	"github.com/fajarprasetia/smartone-finance/internal/dto"
	"github.com/fajarprasetia/smartone-finance/internal/middleware"
	"github.com/fajarprasetia/smartone-finance/internal/utils/pagination"
)

// cashService records cash movements and journalizes INCOME and EXPENSE
// transactions through the posting engine. PAYOUT transactions are cash-box
// records only and never reach the general ledger.
type cashService struct {
	cashRepo    portsrepo.CashTransactionRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	periodRepo  portsrepo.PeriodRepositoryFacade
	journalSvc  portssvc.JournalSvcFacade
}

// NewCashService creates the cash adapter service.
func NewCashService(cashRepo portsrepo.CashTransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, periodRepo portsrepo.PeriodRepositoryFacade, journalSvc portssvc.JournalSvcFacade) portssvc.CashSvcFacade {
	return &cashService{
		cashRepo:    cashRepo,
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
		journalSvc:  journalSvc,
	}
}

var _ portssvc.CashSvcFacade = (*cashService)(nil)

// RecordCashTransaction saves a cash record and, for INCOME and EXPENSE,
// synthesizes one posted journal entry for it. Journalization is best-effort:
// when no open period covers the date (or no counterpart account exists) the
// record is kept with status PENDING instead of failing the request.
func (s *cashService) RecordCashTransaction(ctx context.Context, req dto.RecordCashTransactionRequest, creatorUserID string) (*domain.CashTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	cashAccount, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, req.AccountID)
	}
	if !cashAccount.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, cashAccount.Code)
	}

	now := time.Now().UTC()
	status := domain.CashPending
	if req.Type == domain.CashPayout {
		// Payouts are complete the moment they are recorded.
		status = domain.CashCompleted
	}

	txn := domain.CashTransaction{
		TransactionID:   uuid.NewString(),
		Type:            req.Type,
		Amount:          req.Amount,
		Description:     req.Description,
		Category:        req.Category,
		Date:            req.Date,
		Status:          status,
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
		AccountID:       req.AccountID,
		Notes:           req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.cashRepo.SaveCashTransaction(ctx, &txn); err != nil {
		logger.Error("Failed to save cash transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save cash transaction: %w", err)
	}

	if req.Type == domain.CashPayout {
		logger.Info("Cash payout recorded", slog.String("transaction_number", txn.TransactionNumber))
		return &txn, nil
	}

	entryID, err := s.journalize(ctx, &txn, cashAccount, creatorUserID)
	if err != nil {
		// The cash record stands; journalization can be retried later.
		logger.Warn("Cash transaction recorded without journal entry",
			slog.String("transaction_number", txn.TransactionNumber),
			slog.String("reason", err.Error()))
		return &txn, nil
	}

	if err := s.cashRepo.MarkJournalized(ctx, txn.TransactionID, entryID, creatorUserID, time.Now().UTC()); err != nil {
		logger.Error("Failed to mark cash transaction journalized",
			slog.String("error", err.Error()),
			slog.String("transaction_id", txn.TransactionID))
		return nil, fmt.Errorf("failed to finalize cash transaction: %w", err)
	}

	txn.Status = domain.CashCompleted
	txn.JournalEntryID = &entryID
	logger.Info("Cash transaction journalized",
		slog.String("transaction_number", txn.TransactionNumber),
		slog.String("entry_id", entryID))
	return &txn, nil
}

// journalize builds and posts the balanced entry for an INCOME or EXPENSE
// transaction: INCOME debits the cash account and credits a revenue account;
// EXPENSE debits an expense account and credits the cash account. The
// counterpart is chosen by category match, falling back to the lowest-coded
// active account of the required type.
func (s *cashService) journalize(ctx context.Context, txn *domain.CashTransaction, cashAccount *domain.Account, userID string) (string, error) {
	period, err := s.periodRepo.FindPeriodContaining(ctx, txn.Date)
	if err != nil {
		return "", fmt.Errorf("no period covers %s: %w", txn.Date.Format("2006-01-02"), err)
	}
	if period.IsClosed() {
		return "", fmt.Errorf("period %s is closed", period.Name)
	}

	counterpartType := domain.Revenue
	if txn.Type == domain.CashExpense {
		counterpartType = domain.Expense
	}
	counterpart, err := s.accountRepo.FindCounterpartAccount(ctx, counterpartType, txn.Category)
	if err != nil {
		return "", fmt.Errorf("no %s account available: %w", counterpartType, err)
	}

	var items []dto.JournalEntryItemRequest
	if txn.Type == domain.CashIncome {
		items = []dto.JournalEntryItemRequest{
			{AccountID: cashAccount.AccountID, Description: txn.Description, Debit: txn.Amount},
			{AccountID: counterpart.AccountID, Description: txn.Description, Credit: txn.Amount},
		}
	} else {
		items = []dto.JournalEntryItemRequest{
			{AccountID: counterpart.AccountID, Description: txn.Description, Debit: txn.Amount},
			{AccountID: cashAccount.AccountID, Description: txn.Description, Credit: txn.Amount},
		}
	}

	posted := domain.Posted
	entry, err := s.journalSvc.CreateEntry(ctx, dto.CreateJournalEntryRequest{
		Date:        txn.Date,
		PeriodID:    period.PeriodID,
		Description: fmt.Sprintf("Cash %s: %s", txn.Type, txn.Description),
		Reference:   txn.TransactionNumber,
		Status:      &posted,
		Items:       items,
	}, userID)
	if err != nil {
		return "", err
	}
	return entry.EntryID, nil
}

// ListCashTransactions returns a page of cash records, newest first.
func (s *cashService) ListCashTransactions(ctx context.Context, params dto.ListCashTransactionsParams) ([]domain.CashTransaction, int64, error) {
	page := pagination.Normalize(params.Page, params.PageSize, "", "", "date", nil)
	return s.cashRepo.ListCashTransactions(ctx, page.PageSize, page.Offset())
}
