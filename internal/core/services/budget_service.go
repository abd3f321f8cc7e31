package services

import (
	"context"
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
)

type budgetService struct {
	budgetRepo  portsrepo.BudgetRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	periodRepo  portsrepo.PeriodRepositoryFacade
}

// NewBudgetService creates the budget service.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, periodRepo portsrepo.PeriodRepositoryFacade) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:  budgetRepo,
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// buildItems converts request lines into domain budget items, validating the
// referenced accounts and amounts. Returns the items and their total.
func (s *budgetService) buildItems(ctx context.Context, budgetID string, reqItems []dto.BudgetItemRequest) ([]domain.BudgetItem, decimal.Decimal, error) {
	if len(reqItems) == 0 {
		return nil, decimal.Zero, fmt.Errorf("%w: budget must have at least one item", apperrors.ErrValidation)
	}

	accountIDs := make([]string, 0, len(reqItems))
	seen := make(map[string]struct{}, len(reqItems))
	for _, item := range reqItems {
		if item.Amount.IsNegative() {
			return nil, decimal.Zero, fmt.Errorf("%w: budget amounts must not be negative", apperrors.ErrValidation)
		}
		if _, ok := seen[item.AccountID]; !ok {
			seen[item.AccountID] = struct{}{}
			accountIDs = append(accountIDs, item.AccountID)
		}
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		if _, found := accountsMap[id]; !found {
			return nil, decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, id)
		}
	}

	total := decimal.Zero
	items := make([]domain.BudgetItem, len(reqItems))
	for i, itemReq := range reqItems {
		acc := accountsMap[itemReq.AccountID]
		items[i] = domain.BudgetItem{
			ItemID:      uuid.NewString(),
			BudgetID:    budgetID,
			AccountID:   itemReq.AccountID,
			AccountCode: acc.Code,
			AccountName: acc.Name,
			Description: itemReq.Description,
			Amount:      itemReq.Amount,
		}
		total = total.Add(itemReq.Amount)
	}
	return items, total, nil
}

// CreateBudget creates a budget with its items. At most one budget may exist
// per (department, period); the unique constraint surfaces as ErrDuplicate.
func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, creatorUserID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.PeriodID != "" {
		if _, err := s.periodRepo.FindPeriodByID(ctx, req.PeriodID); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrPeriodNotFound, req.PeriodID)
		}
	}

	budgetID := uuid.NewString()
	items, total, err := s.buildItems(ctx, budgetID, req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	budget := domain.Budget{
		BudgetID:    budgetID,
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Department:  req.Department,
		PeriodID:    req.PeriodID,
		TotalAmount: total,
		Items:       items,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		logger.Error("Failed to save budget", slog.String("error", err.Error()), slog.String("name", budget.Name))
		return nil, err
	}

	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID), slog.Int("year", budget.Year))
	return &budget, nil
}

func (s *budgetService) GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	return s.budgetRepo.FindBudgetByID(ctx, budgetID)
}

func (s *budgetService) ListBudgets(ctx context.Context, year *int) ([]domain.Budget, error) {
	return s.budgetRepo.ListBudgets(ctx, year)
}

// UpdateBudget applies partial updates; a non-nil Items slice replaces the
// full item set and recomputes the total.
func (s *budgetService) UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		budget.Name = *req.Name
	}
	if req.Description != nil {
		budget.Description = *req.Description
	}
	if req.Department != nil {
		budget.Department = *req.Department
	}
	if req.PeriodID != nil {
		if *req.PeriodID != "" {
			if _, err := s.periodRepo.FindPeriodByID(ctx, *req.PeriodID); err != nil {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrPeriodNotFound, *req.PeriodID)
			}
		}
		budget.PeriodID = *req.PeriodID
	}

	if req.Items != nil {
		items, total, err := s.buildItems(ctx, budget.BudgetID, req.Items)
		if err != nil {
			return nil, err
		}
		budget.Items = items
		budget.TotalAmount = total
	}

	budget.LastUpdatedAt = time.Now().UTC()
	budget.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		logger.Error("Failed to update budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return nil, err
	}

	logger.Info("Budget updated", slog.String("budget_id", budgetID))
	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, budgetID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.budgetRepo.FindBudgetByID(ctx, budgetID); err != nil {
		return err
	}
	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		logger.Error("Failed to delete budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return err
	}

	logger.Info("Budget deleted", slog.String("budget_id", budgetID))
	return nil
}
