package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashTransactionType classifies a cash ledger record.
type CashTransactionType string

const (
	CashIncome  CashTransactionType = "INCOME"
	CashExpense CashTransactionType = "EXPENSE"
	CashPayout  CashTransactionType = "PAYOUT"
)

// CashTransactionStatus tracks whether the record made it into the general
// ledger. A PENDING transaction was recorded but could not be journalized
// (typically no open period covered its date).
type CashTransactionStatus string

const (
	CashCompleted CashTransactionStatus = "COMPLETED"
	CashPending   CashTransactionStatus = "PENDING"
)

// CashTransaction is the cash-ledger convenience record. INCOME and EXPENSE
// transactions synthesize one balanced journal entry each; the entry is the
// only path by which the transaction moves an account balance.
type CashTransaction struct {
	TransactionID     string                `json:"transactionID"`     // Primary key (UUID)
	TransactionNumber string                `json:"transactionNumber"` // e.g. TXN-20240115-001
	Type              CashTransactionType   `json:"type"`
	Amount            decimal.Decimal       `json:"amount"`
	Description       string                `json:"description"`
	Category          string                `json:"category"`
	Date              time.Time             `json:"date"`
	Status            CashTransactionStatus `json:"status"`
	PaymentMethod     string                `json:"paymentMethod"`
	ReferenceNumber   string                `json:"referenceNumber"`
	AccountID         string                `json:"accountID"`                // The cash account involved
	JournalEntryID    *string               `json:"journalEntryID,omitempty"` // Set once journalized
	Notes             string                `json:"notes"`
	AuditFields
}
