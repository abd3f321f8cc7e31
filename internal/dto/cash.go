package dto

import (
	"time"

	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordCashTransactionRequest is the payload for recording a cash movement.
type RecordCashTransactionRequest struct {
	Type            domain.CashTransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE PAYOUT"`
	Amount          decimal.Decimal            `json:"amount" binding:"required"`
	Description     string                     `json:"description" binding:"required"`
	Category        string                     `json:"category"`
	Date            time.Time                  `json:"date" binding:"required"`
	PaymentMethod   string                     `json:"paymentMethod"`
	ReferenceNumber string                     `json:"referenceNumber"`
	AccountID       string                     `json:"accountId" binding:"required"`
	Notes           string                     `json:"notes"`
}

// CashTransactionResponse is the API representation of a cash record.
type CashTransactionResponse struct {
	TransactionID     string                       `json:"transactionID"`
	TransactionNumber string                       `json:"transactionNumber"`
	Type              domain.CashTransactionType   `json:"type"`
	Amount            decimal.Decimal              `json:"amount"`
	Description       string                       `json:"description"`
	Category          string                       `json:"category"`
	Date              time.Time                    `json:"date"`
	Status            domain.CashTransactionStatus `json:"status"`
	PaymentMethod     string                       `json:"paymentMethod,omitempty"`
	ReferenceNumber   string                       `json:"referenceNumber,omitempty"`
	AccountID         string                       `json:"accountID"`
	JournalEntryID    *string                      `json:"journalEntryID,omitempty"`
	Notes             string                       `json:"notes,omitempty"`
}

// RecordCashTransactionResponse is the create envelope.
type RecordCashTransactionResponse struct {
	Success     bool                    `json:"success"`
	Transaction CashTransactionResponse `json:"transaction"`
}

// ListCashTransactionsParams are the list query parameters.
type ListCashTransactionsParams struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}

// ListCashTransactionsResponse is the cash transaction list envelope.
type ListCashTransactionsResponse struct {
	Transactions []CashTransactionResponse `json:"transactions"`
	Pagination   PaginationResponse        `json:"pagination"`
}

// ToCashTransactionResponse converts a domain cash transaction to its API shape.
func ToCashTransactionResponse(t *domain.CashTransaction) CashTransactionResponse {
	return CashTransactionResponse{
		TransactionID:     t.TransactionID,
		TransactionNumber: t.TransactionNumber,
		Type:              t.Type,
		Amount:            t.Amount,
		Description:       t.Description,
		Category:          t.Category,
		Date:              t.Date,
		Status:            t.Status,
		PaymentMethod:     t.PaymentMethod,
		ReferenceNumber:   t.ReferenceNumber,
		AccountID:         t.AccountID,
		JournalEntryID:    t.JournalEntryID,
		Notes:             t.Notes,
	}
}
