package models

import "github.com/shopspring/decimal"

// Budget is the DB representation of a budget header row.
type Budget struct {
	BudgetID    string
	Name        string
	Year        int
	Description string
	Department  string
	PeriodID    string
	TotalAmount decimal.Decimal
	AuditFields
}

// BudgetItem is the DB representation of a budget line row.
type BudgetItem struct {
	ItemID      string
	BudgetID    string
	AccountID   string
	AccountCode string
	AccountName string
	Description string
	Amount      decimal.Decimal
}
