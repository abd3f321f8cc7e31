package services

import (
	"context"
	"time"

	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	"github.com/fajarprasetia/smartone-finance/internal/dto"
)

// AccountSvcFacade exposes chart-of-accounts operations to handlers and to
// the adapters. Note there is deliberately no balance-setting operation here;
// balances only move through the posting engine.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// PeriodSvcFacade exposes financial period registry operations.
type PeriodSvcFacade interface {
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.FinancialPeriod, error)
	GetPeriodByID(ctx context.Context, periodID string) (*domain.FinancialPeriod, error)
	ListPeriods(ctx context.Context) ([]domain.FinancialPeriod, error)
	FindPeriodContaining(ctx context.Context, date time.Time) (*domain.FinancialPeriod, error)
	ClosePeriod(ctx context.Context, periodID string, userID string) (*domain.FinancialPeriod, error)
}

// JournalSvcFacade is the posting engine's public surface.
type JournalSvcFacade interface {
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, int64, error)
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)
	CancelEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)
	DeleteEntry(ctx context.Context, entryID string, userID string) error
}

// BudgetSvcFacade exposes budget operations.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error)
	GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, year *int) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, budgetID string) error
}

// CashSvcFacade exposes the cash adapter.
type CashSvcFacade interface {
	RecordCashTransaction(ctx context.Context, req dto.RecordCashTransactionRequest, creatorUserID string) (*domain.CashTransaction, error)
	ListCashTransactions(ctx context.Context, params dto.ListCashTransactionsParams) ([]domain.CashTransaction, int64, error)
}

// ReceivableSvcFacade exposes the accounts-receivable adapter.
type ReceivableSvcFacade interface {
	RecordOrderPayment(ctx context.Context, orderID string, req dto.RecordPaymentRequest, userID string) (*dto.PaymentResultResponse, error)
}

// ReportingSvcFacade exposes the read-only reports.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, params dto.TrialBalanceParams) (*dto.TrialBalanceResponse, error)
	BudgetVsActual(ctx context.Context, year int) ([]domain.BudgetVsActualRow, error)
	CashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowSummary, error)
}

// ServiceContainer bundles every service facade for route registration.
type ServiceContainer struct {
	Account    AccountSvcFacade
	Period     PeriodSvcFacade
	Journal    JournalSvcFacade
	Budget     BudgetSvcFacade
	Cash       CashSvcFacade
	Receivable ReceivableSvcFacade
	Reporting  ReportingSvcFacade
}
