package dto

import (
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest is the payload for recording an order payment.
type RecordPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
}

// PaymentResultResponse reports the order's receivable state after a payment.
type PaymentResultResponse struct {
	OrderID       string               `json:"orderID"`
	OrderNumber   string               `json:"orderNumber"`
	PaymentKind   domain.PaymentKind   `json:"paymentKind"`
	AmountPaid    decimal.Decimal      `json:"amountPaid"` // this payment
	TotalPaid     decimal.Decimal      `json:"totalPaid"`
	Balance       decimal.Decimal      `json:"balance"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
}
