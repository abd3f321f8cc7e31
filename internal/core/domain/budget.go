package domain

import "github.com/shopspring/decimal"

// Budget is a plan for a calendar year, optionally scoped to a department and
// a financial period. At most one budget may exist per (department, period)
// pair. TotalAmount is derived from its items, never set directly.
type Budget struct {
	BudgetID    string          `json:"budgetID"` // Primary key (UUID)
	Name        string          `json:"name"`
	Year        int             `json:"year"`
	Description string          `json:"description"`
	Department  string          `json:"department"`         // Optional
	PeriodID    string          `json:"periodID,omitempty"` // Optional FK -> financial_periods
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Items       []BudgetItem    `json:"items"`
	AuditFields
}

// BudgetItem is one planned amount against one account.
type BudgetItem struct {
	ItemID      string          `json:"itemID"` // Primary key (UUID)
	BudgetID    string          `json:"budgetID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"` // Populated on reads joined with accounts
	AccountName string          `json:"accountName"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}
