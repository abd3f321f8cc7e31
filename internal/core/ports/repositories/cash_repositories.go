package repositories

import (
	"context"
	"time"

	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
)

// CashTransactionRepositoryFacade provides access to the cash ledger records.
type CashTransactionRepositoryFacade interface {
	// SaveCashTransaction persists the record, allocating TransactionNumber
	// under the unique constraint (retrying on collision). The allocated
	// number is written back to txn.
	SaveCashTransaction(ctx context.Context, txn *domain.CashTransaction) error

	FindCashTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error)
	ListCashTransactions(ctx context.Context, limit, offset int) ([]domain.CashTransaction, int64, error)

	// MarkJournalized links the transaction to its synthesized entry and
	// flips its status to COMPLETED.
	MarkJournalized(ctx context.Context, transactionID, entryID string, userID string, now time.Time) error
}

// OrderRepositoryFacade provides access to the payment fields of production
// orders. Orders themselves are owned by the production module.
type OrderRepositoryFacade interface {
	FindOrderByID(ctx context.Context, orderID string) (*domain.ProductionOrder, error)
	UpdateOrderPayment(ctx context.Context, order domain.ProductionOrder) error
}
