package repositories

import (
	"context"

	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetRepositoryFacade provides access to budget storage. Budgets persist
// with their items in one transaction; updates replace the full item set.
type BudgetRepositoryFacade interface {
	SaveBudget(ctx context.Context, budget domain.Budget) error
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, year *int) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, budget domain.Budget) error
	DeleteBudget(ctx context.Context, budgetID string) error

	// GetBudgetedAmountsByYear sums budget items per account across all
	// budgets for the given year.
	GetBudgetedAmountsByYear(ctx context.Context, year int) (map[string]decimal.Decimal, error)
}
