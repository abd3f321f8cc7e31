package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	portsrepo "github.com/fajarprasetia/smartone-finance/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for the read-only
// aggregation queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// GetAccountActivity aggregates ledger lines per account within the window.
// The status filter keeps reports reconciled with account balances:
// POSTED entries count, and so do CANCELLED entries that carry a reversing
// link, because their effect was applied and then reversed by another POSTED
// entry that also counts.
func (r *PgxReportingRepository) GetAccountActivity(ctx context.Context, from *time.Time, to time.Time) ([]portsrepo.AccountActivity, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type,
		       COALESCE(SUM(i.debit), 0), COALESCE(SUM(i.credit), 0)
		FROM journal_entry_items i
		JOIN journal_entries e ON e.entry_id = i.entry_id
		JOIN accounts a ON a.account_id = i.account_id
		WHERE (e.status = 'POSTED' OR (e.status = 'CANCELLED' AND e.reversing_entry_id IS NOT NULL))
		  AND e.entry_date::date <= $1::date
		  AND ($2::date IS NULL OR e.entry_date::date >= $2::date)
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to query account activity: %w", err)
	}
	defer rows.Close()

	activity := make([]portsrepo.AccountActivity, 0)
	for rows.Next() {
		var a portsrepo.AccountActivity
		var accountType string
		if err := rows.Scan(&a.AccountID, &a.AccountCode, &a.AccountName, &accountType, &a.Debit, &a.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan account activity row: %w", err)
		}
		a.AccountType = domain.AccountType(accountType)
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account activity rows: %w", err)
	}
	return activity, nil
}

// GetCashFlowData aggregates completed cash transactions per category within
// [from, to]. INCOME counts as inflow; EXPENSE and PAYOUT as outflow.
func (r *PgxReportingRepository) GetCashFlowData(ctx context.Context, from, to time.Time) ([]domain.CategoryFlow, error) {
	query := `
		SELECT COALESCE(NULLIF(category, ''), 'Uncategorized'),
		       COALESCE(SUM(amount) FILTER (WHERE type = 'INCOME'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE type <> 'INCOME'), 0)
		FROM cash_transactions
		WHERE status = 'COMPLETED'
		  AND date::date >= $1::date AND date::date <= $2::date
		GROUP BY 1
		ORDER BY 1;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash flow data: %w", err)
	}
	defer rows.Close()

	flows := make([]domain.CategoryFlow, 0)
	for rows.Next() {
		var f domain.CategoryFlow
		if err := rows.Scan(&f.Category, &f.Income, &f.Expense); err != nil {
			return nil, fmt.Errorf("failed to scan cash flow row: %w", err)
		}
		flows = append(flows, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cash flow rows: %w", err)
	}
	return flows, nil
}
