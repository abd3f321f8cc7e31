package dto

import (
	"time"

	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceParams selects the aggregation window: a period, or everything
// up to asOfDate (defaulting to today when both are absent).
type TrialBalanceParams struct {
	AsOfDate *time.Time `form:"asOfDate" time_format:"2006-01-02"`
	PeriodID string     `form:"periodId"`
}

// TrialBalanceResponse is the trial balance report envelope.
type TrialBalanceResponse struct {
	Accounts   []domain.TrialBalanceRow `json:"accounts"`
	Totals     TrialBalanceTotals       `json:"totals"`
	AsOfDate   time.Time                `json:"asOfDate"`
	PeriodID   string                   `json:"periodID,omitempty"`
	PeriodName string                   `json:"periodName,omitempty"`
}

// TrialBalanceTotals are the grand totals; debit must equal credit.
type TrialBalanceTotals struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// BudgetVsActualParams selects the comparison year.
type BudgetVsActualParams struct {
	Year int `form:"year" binding:"required"`
}

// BudgetVsActualResponse is the budget-vs-actual report envelope.
type BudgetVsActualResponse struct {
	Year int                        `json:"year"`
	Rows []domain.BudgetVsActualRow `json:"rows"`
}

// CashFlowParams selects the cash-flow range.
type CashFlowParams struct {
	StartDate time.Time `form:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `form:"endDate" binding:"required" time_format:"2006-01-02"`
}
