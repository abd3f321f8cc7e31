package repositories

import (
	"context"
	"time"

	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ListAccountsFilter narrows ListAccounts results.
type ListAccountsFilter struct {
	AccountType *domain.AccountType
	IsActive    *bool
}

// AccountRepositoryFacade provides access to chart-of-accounts storage.
//
// Balance-mutating methods take a pgx.Tx because balances may only change
// inside the posting engine's transaction.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, filter ListAccountsFilter) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error

	// FindCounterpartAccount picks the account for the non-cash leg of a
	// synthesized entry: the lowest-coded active account of the given type,
	// preferring a subtype match when one exists.
	FindCounterpartAccount(ctx context.Context, accountType domain.AccountType, subtype string) (*domain.Account, error)

	// FindAccountsByIDsForUpdate locks the given account rows for the
	// duration of tx and returns their current state.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx applies net signed deltas to account balances
	// inside tx. The only balance-mutating operation in the system.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, userID string, now time.Time) error
}
