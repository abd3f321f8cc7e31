package domain

import "github.com/shopspring/decimal"

// TrialBalanceRow is one account's aggregated debit/credit totals.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"` // Signed per the account type's normal side
}

// TrialBalanceReport lists every account with postings; TotalDebit must equal
// TotalCredit for any input (the fundamental accounting identity).
type TrialBalanceReport struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// BudgetVsActualRow compares one budgeted account's plan against its posted
// activity for a year.
type BudgetVsActualRow struct {
	AccountID          string          `json:"accountID"`
	AccountCode        string          `json:"accountCode"`
	AccountName        string          `json:"accountName"`
	BudgetAmount       decimal.Decimal `json:"budgetAmount"`
	ActualAmount       decimal.Decimal `json:"actualAmount"`
	Variance           decimal.Decimal `json:"variance"`           // budget - actual
	VariancePercentage int64           `json:"variancePercentage"` // rounded; 0 when BudgetAmount is 0
}

// CategoryFlow aggregates cash movement per category for the cash dashboard.
type CategoryFlow struct {
	Category string          `json:"category"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
}

// CashFlowSummary is the cash-management dashboard aggregate for a range.
type CashFlowSummary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Net          decimal.Decimal `json:"net"`
	ByCategory   []CategoryFlow  `json:"byCategory"`
}
