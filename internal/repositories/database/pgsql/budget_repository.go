package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fajarprasetia/smartone-finance/internal/apperrors"
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	portsrepo "github.com/fajarprasetia/smartone-finance/internal/core/ports/repositories"
	"github.com/fajarprasetia/smartone-finance/internal/models"
	"github.com/fajarprasetia/smartone-finance/internal/utils/mapping"
)

const budgetColumns = `budget_id, name, year, description, department, period_id, total_amount, created_at, created_by, last_updated_at, last_updated_by`

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func scanBudget(row pgx.Row) (models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.Name,
		&m.Year,
		&m.Description,
		&m.Department,
		&m.PeriodID,
		&m.TotalAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertBudgetItemsInTx(ctx context.Context, tx pgx.Tx, items []domain.BudgetItem) error {
	query := `
		INSERT INTO budget_items (item_id, budget_id, account_id, description, amount)
		VALUES ($1, $2, $3, $4, $5);
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		mi := mapping.ToModelBudgetItem(item)
		batch.Queue(query, mi.ItemID, mi.BudgetID, mi.AccountID, mi.Description, mi.Amount)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert budget items: %w", err)
	}
	return nil
}

// SaveBudget inserts a budget with its items in one transaction. A second
// budget for the same (department, period) pair maps to ErrDuplicate.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		m.BudgetID,
		m.Name,
		m.Year,
		m.Description,
		m.Department,
		m.PeriodID,
		m.TotalAmount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: a budget already exists for this department and period", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save budget %s: %w", m.BudgetID, err)
	}

	if err := insertBudgetItemsInTx(ctx, tx, budget.Items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindBudgetByID retrieves a budget with its items joined with account detail.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT budget_id, name, year, description, department, COALESCE(period_id, ''), total_amount, created_at, created_by, last_updated_at, last_updated_by FROM budgets WHERE budget_id = $1;`

	m, err := scanBudget(r.Pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}

	budget := mapping.ToDomainBudget(m)
	items, err := r.findItemsByBudgetIDs(ctx, []string{budgetID})
	if err != nil {
		return nil, err
	}
	budget.Items = items[budgetID]
	return &budget, nil
}

func (r *PgxBudgetRepository) findItemsByBudgetIDs(ctx context.Context, budgetIDs []string) (map[string][]domain.BudgetItem, error) {
	query := `
		SELECT i.item_id, i.budget_id, i.account_id, a.code, a.name, i.description, i.amount
		FROM budget_items i
		JOIN accounts a ON a.account_id = i.account_id
		WHERE i.budget_id = ANY($1)
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, budgetIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget items: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.BudgetItem, len(budgetIDs))
	for rows.Next() {
		var m models.BudgetItem
		if err := rows.Scan(&m.ItemID, &m.BudgetID, &m.AccountID, &m.AccountCode, &m.AccountName, &m.Description, &m.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan budget item row: %w", err)
		}
		result[m.BudgetID] = append(result[m.BudgetID], mapping.ToDomainBudgetItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budget item rows: %w", err)
	}
	return result, nil
}

// ListBudgets returns budgets with their items, optionally filtered by year,
// newest year first.
func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, year *int) ([]domain.Budget, error) {
	query := `SELECT budget_id, name, year, description, department, COALESCE(period_id, ''), total_amount, created_at, created_by, last_updated_at, last_updated_by FROM budgets`
	args := []any{}
	if year != nil {
		query += ` WHERE year = $1`
		args = append(args, *year)
	}
	query += ` ORDER BY year DESC, name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	budgets := make([]domain.Budget, 0)
	budgetIDs := make([]string, 0)
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, mapping.ToDomainBudget(m))
		budgetIDs = append(budgetIDs, m.BudgetID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budget rows: %w", err)
	}

	if len(budgetIDs) > 0 {
		itemsMap, err := r.findItemsByBudgetIDs(ctx, budgetIDs)
		if err != nil {
			return nil, err
		}
		for i := range budgets {
			budgets[i].Items = itemsMap[budgets[i].BudgetID]
		}
	}
	return budgets, nil
}

// UpdateBudget rewrites the header and replaces the full item set in one
// transaction.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelBudget(budget)
	query := `
		UPDATE budgets
		SET name = $2, description = $3, department = $4, period_id = NULLIF($5, ''), total_amount = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE budget_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.BudgetID,
		m.Name,
		m.Description,
		m.Department,
		m.PeriodID,
		m.TotalAmount,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: a budget already exists for this department and period", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update budget %s: %w", m.BudgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM budget_items WHERE budget_id = $1;`, m.BudgetID); err != nil {
		return fmt.Errorf("failed to clear items for budget %s: %w", m.BudgetID, err)
	}
	if err := insertBudgetItemsInTx(ctx, tx, budget.Items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteBudget removes the budget and its items in one transaction.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM budget_items WHERE budget_id = $1;`, budgetID); err != nil {
		return fmt.Errorf("failed to delete items for budget %s: %w", budgetID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// GetBudgetedAmountsByYear sums budget items per account across all budgets
// for a year.
func (r *PgxBudgetRepository) GetBudgetedAmountsByYear(ctx context.Context, year int) (map[string]decimal.Decimal, error) {
	query := `
		SELECT i.account_id, SUM(i.amount)
		FROM budget_items i
		JOIN budgets b ON b.budget_id = i.budget_id
		WHERE b.year = $1
		GROUP BY i.account_id;
	`
	rows, err := r.Pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgeted amounts for %d: %w", year, err)
	}
	defer rows.Close()

	result := make(map[string]decimal.Decimal)
	for rows.Next() {
		var accountID string
		var amount decimal.Decimal
		if err := rows.Scan(&accountID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan budgeted amount row: %w", err)
		}
		result[accountID] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budgeted amount rows: %w", err)
	}
	return result, nil
}
