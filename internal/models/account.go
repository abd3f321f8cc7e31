package models

import "github.com/shopspring/decimal"

// AccountType mirrors domain.AccountType at the storage layer.
type AccountType string

// Account is the DB representation of a chart-of-accounts row.
type Account struct {
	AccountID   string
	Code        string
	Name        string
	AccountType AccountType
	Subtype     string
	Description string
	Balance     decimal.Decimal
	IsActive    bool
	AuditFields
}
