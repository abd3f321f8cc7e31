package repositories

import (
	"context"
	"time"

	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountActivity is one account's raw posted debit/credit totals.
type AccountActivity struct {
	AccountID   string
	AccountCode string
	AccountName string
	AccountType domain.AccountType
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// ReportingRepositoryFacade runs the read-only aggregation queries behind the
// reporting layer. All queries include entries whose effects were applied:
// POSTED entries plus CANCELLED entries carrying a reversing link.
type ReportingRepositoryFacade interface {
	// GetAccountActivity aggregates ledger lines per account. from is
	// optional (nil means from the beginning of time); to is inclusive.
	GetAccountActivity(ctx context.Context, from *time.Time, to time.Time) ([]AccountActivity, error)

	// GetCashFlowData aggregates completed cash transactions per category
	// within [from, to].
	GetCashFlowData(ctx context.Context, from, to time.Time) ([]domain.CategoryFlow, error)
}
