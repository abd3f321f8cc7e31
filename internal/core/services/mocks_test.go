package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	portsrepo "github.com/fajarprasetia/smartone-finance/internal/core/ports/repositories"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.ListAccountsFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindCounterpartAccount(ctx context.Context, accountType domain.AccountType, subtype string) (*domain.Account, error) {
	args := m.Called(ctx, accountType, subtype)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, changes, userID, now)
	return args.Error(0)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.FinancialPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FinancialPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodContaining(ctx context.Context, date time.Time) (*domain.FinancialPeriod, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context) ([]domain.FinancialPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindOverlappingPeriod(ctx context.Context, start, end time.Time) (*domain.FinancialPeriod, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ClosePeriod(ctx context.Context, periodID string, userID string, now time.Time) error {
	args := m.Called(ctx, periodID, userID, now)
	return args.Error(0)
}

// --- Mock JournalEntryRepository ---

type MockJournalEntryRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepositoryFacade = (*MockJournalEntryRepository)(nil)

func (m *MockJournalEntryRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, entry, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryItem, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryItem), args.Error(1)
}

func (m *MockJournalEntryRepository) FindItemsByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryItem, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalEntryItem), args.Error(1)
}

func (m *MockJournalEntryRepository) ListEntries(ctx context.Context, filter portsrepo.JournalEntryFilter) ([]domain.JournalEntry, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockJournalEntryRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalEntryItem, balanceChanges map[string]decimal.Decimal, replaceItems bool) error {
	args := m.Called(ctx, entry, items, balanceChanges, replaceItems)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, userID string, now time.Time) error {
	args := m.Called(ctx, entryID, status, userID, now)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) CancelEntry(ctx context.Context, original domain.JournalEntry, reversal *domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, original, reversal, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock BudgetRepository ---

type MockBudgetRepository struct {
	mock.Mock
}

var _ portsrepo.BudgetRepositoryFacade = (*MockBudgetRepository)(nil)

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context, year *int) ([]domain.Budget, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	args := m.Called(ctx, budgetID)
	return args.Error(0)
}

func (m *MockBudgetRepository) GetBudgetedAmountsByYear(ctx context.Context, year int) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- Mock CashTransactionRepository ---

type MockCashTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.CashTransactionRepositoryFacade = (*MockCashTransactionRepository)(nil)

func (m *MockCashTransactionRepository) SaveCashTransaction(ctx context.Context, txn *domain.CashTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockCashTransactionRepository) FindCashTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTransaction), args.Error(1)
}

func (m *MockCashTransactionRepository) ListCashTransactions(ctx context.Context, limit, offset int) ([]domain.CashTransaction, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.CashTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockCashTransactionRepository) MarkJournalized(ctx context.Context, transactionID, entryID string, userID string, now time.Time) error {
	args := m.Called(ctx, transactionID, entryID, userID, now)
	return args.Error(0)
}

// --- Mock OrderRepository ---

type MockOrderRepository struct {
	mock.Mock
}

var _ portsrepo.OrderRepositoryFacade = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.ProductionOrder, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductionOrder), args.Error(1)
}

func (m *MockOrderRepository) UpdateOrderPayment(ctx context.Context, order domain.ProductionOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, from *time.Time, to time.Time) ([]portsrepo.AccountActivity, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) GetCashFlowData(ctx context.Context, from, to time.Time) ([]domain.CategoryFlow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryFlow), args.Error(1)
}
