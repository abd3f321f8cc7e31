package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashTransaction is the DB representation of a cash ledger record.
type CashTransaction struct {
	TransactionID     string
	TransactionNumber string
	Type              string
	Amount            decimal.Decimal
	Description       string
	Category          string
	Date              time.Time
	Status            string
	PaymentMethod     string
	ReferenceNumber   string
	AccountID         string
	JournalEntryID    *string
	Notes             string
	AuditFields
}
