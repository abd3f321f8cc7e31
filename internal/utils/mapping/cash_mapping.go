package mapping

import (
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	"github.com/fajarprasetia/smartone-finance/internal/models"
)

// ToModelCashTransaction converts a domain cash transaction to its DB model.
func ToModelCashTransaction(d domain.CashTransaction) models.CashTransaction {
	return models.CashTransaction{
		TransactionID:     d.TransactionID,
		TransactionNumber: d.TransactionNumber,
		Type:              string(d.Type),
		Amount:            d.Amount,
		Description:       d.Description,
		Category:          d.Category,
		Date:              d.Date,
		Status:            string(d.Status),
		PaymentMethod:     d.PaymentMethod,
		ReferenceNumber:   d.ReferenceNumber,
		AccountID:         d.AccountID,
		JournalEntryID:    d.JournalEntryID,
		Notes:             d.Notes,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCashTransaction converts a DB cash transaction model to the domain representation.
func ToDomainCashTransaction(m models.CashTransaction) domain.CashTransaction {
	return domain.CashTransaction{
		TransactionID:     m.TransactionID,
		TransactionNumber: m.TransactionNumber,
		Type:              domain.CashTransactionType(m.Type),
		Amount:            m.Amount,
		Description:       m.Description,
		Category:          m.Category,
		Date:              m.Date,
		Status:            domain.CashTransactionStatus(m.Status),
		PaymentMethod:     m.PaymentMethod,
		ReferenceNumber:   m.ReferenceNumber,
		AccountID:         m.AccountID,
		JournalEntryID:    m.JournalEntryID,
		Notes:             m.Notes,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOrder converts a DB production order model to the domain representation.
func ToDomainOrder(m models.ProductionOrder) domain.ProductionOrder {
	return domain.ProductionOrder{
		OrderID:          m.OrderID,
		OrderNumber:      m.OrderNumber,
		CustomerName:     m.CustomerName,
		TotalAmount:      m.TotalAmount,
		DownPayment:      m.DownPayment,
		SettlementAmount: m.SettlementAmount,
		RemainingBalance: m.RemainingBalance,
		PaymentStatus:    domain.PaymentStatus(m.PaymentStatus),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
