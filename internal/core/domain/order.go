package domain

import "github.com/shopspring/decimal"

// PaymentStatus is the receivable state of a production order.
type PaymentStatus string

const (
	Unpaid        PaymentStatus = "UNPAID"
	PartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	Paid          PaymentStatus = "PAID"
)

// PaymentKind distinguishes the first (down) payment from the settlement.
type PaymentKind string

const (
	DownPayment PaymentKind = "DOWN_PAYMENT"
	Settlement  PaymentKind = "SETTLEMENT"
)

// ProductionOrder carries the payment fields the receivable adapter reads and
// updates. The order itself is owned by the production module; this service
// only does accounts-receivable bookkeeping on it and never touches the chart
// of accounts for it.
type ProductionOrder struct {
	OrderID          string          `json:"orderID"` // Primary key (UUID)
	OrderNumber      string          `json:"orderNumber"`
	CustomerName     string          `json:"customerName"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	DownPayment      decimal.Decimal `json:"downPayment"`
	SettlementAmount decimal.Decimal `json:"settlementAmount"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus"`
	AuditFields
}

// TotalPaid is the sum of the down payment and settlement amounts.
func (o ProductionOrder) TotalPaid() decimal.Decimal {
	return o.DownPayment.Add(o.SettlementAmount)
}
