package models

import "github.com/shopspring/decimal"

// ProductionOrder is the DB representation of the payment fields on an order.
type ProductionOrder struct {
	OrderID          string
	OrderNumber      string
	CustomerName     string
	TotalAmount      decimal.Decimal
	DownPayment      decimal.Decimal
	SettlementAmount decimal.Decimal
	RemainingBalance decimal.Decimal
	PaymentStatus    string
	AuditFields
}
