package dto

import (
	"time"

	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetItemRequest is one planned amount in a budget payload.
type BudgetItemRequest struct {
	AccountID   string          `json:"accountId" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// CreateBudgetRequest is the payload for creating a budget with its items.
type CreateBudgetRequest struct {
	Name        string              `json:"name" binding:"required"`
	Year        int                 `json:"year" binding:"required"`
	Description string              `json:"description"`
	Department  string              `json:"department"`
	PeriodID    string              `json:"periodId"`
	Items       []BudgetItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateBudgetRequest carries partial updates; Items, when present, replace
// the full item set.
type UpdateBudgetRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Department  *string             `json:"department"`
	PeriodID    *string             `json:"periodId"`
	Items       []BudgetItemRequest `json:"items"`
}

// BudgetItemResponse is the API representation of a budget line.
type BudgetItemResponse struct {
	ItemID      string          `json:"itemID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode,omitempty"`
	AccountName string          `json:"accountName,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// BudgetResponse is the API representation of a budget.
type BudgetResponse struct {
	BudgetID    string               `json:"budgetID"`
	Name        string               `json:"name"`
	Year        int                  `json:"year"`
	Description string               `json:"description"`
	Department  string               `json:"department,omitempty"`
	PeriodID    string               `json:"periodID,omitempty"`
	TotalAmount decimal.Decimal      `json:"totalAmount"`
	Items       []BudgetItemResponse `json:"items"`
	CreatedAt   time.Time            `json:"createdAt"`
}

// ListBudgetsResponse pairs the budget list with the year's
// budget-vs-actual comparison.
type ListBudgetsResponse struct {
	Budgets        []BudgetResponse           `json:"budgets"`
	BudgetVsActual []domain.BudgetVsActualRow `json:"budgetVsActual"`
}

// ToBudgetResponse converts a domain budget to its API shape.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	items := make([]BudgetItemResponse, len(b.Items))
	for i, item := range b.Items {
		items[i] = BudgetItemResponse{
			ItemID:      item.ItemID,
			AccountID:   item.AccountID,
			AccountCode: item.AccountCode,
			AccountName: item.AccountName,
			Description: item.Description,
			Amount:      item.Amount,
		}
	}
	return BudgetResponse{
		BudgetID:    b.BudgetID,
		Name:        b.Name,
		Year:        b.Year,
		Description: b.Description,
		Department:  b.Department,
		PeriodID:    b.PeriodID,
		TotalAmount: b.TotalAmount,
		Items:       items,
		CreatedAt:   b.CreatedAt,
	}
}
