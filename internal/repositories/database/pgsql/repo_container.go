package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarprasetia/smartone-finance/internal/core/services"
)

// NewRepositories wires every pgsql repository against a shared pool. The
// journal repository receives the account repository so balance changes and
// entry inserts share one transaction.
func NewRepositories(dbPool *pgxpool.Pool) services.Repositories {
	accountRepo := newPgxAccountRepository(dbPool)

	return services.Repositories{
		Account:   accountRepo,
		Period:    newPgxPeriodRepository(dbPool),
		Journal:   newPgxJournalRepository(dbPool, accountRepo),
		Budget:    newPgxBudgetRepository(dbPool),
		Cash:      newPgxCashTransactionRepository(dbPool),
		Order:     newPgxOrderRepository(dbPool),
		Reporting: newPgxReportingRepository(dbPool),
	}
}
