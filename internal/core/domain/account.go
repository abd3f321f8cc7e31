package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a chart-of-accounts entry. Balance is only ever mutated by the
// posting engine inside its transaction; no other caller writes it.
type Account struct {
	AccountID   string          `json:"accountID"` // Primary key (UUID)
	Code        string          `json:"code"`      // Human-readable unique code, e.g. "1000"
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Subtype     string          `json:"subtype"` // Free-text classification, e.g. "Cash"
	Description string          `json:"description"`
	Balance     decimal.Decimal `json:"balance"`
	IsActive    bool            `json:"isActive"` // Deactivated rather than deleted once it has postings
	AuditFields
}
