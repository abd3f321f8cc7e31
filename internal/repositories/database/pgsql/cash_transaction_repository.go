package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarprasetia/smartone-finance/internal/apperrors"
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	portsrepo "github.com/fajarprasetia/smartone-finance/internal/core/ports/repositories"
	"github.com/fajarprasetia/smartone-finance/internal/models"
	"github.com/fajarprasetia/smartone-finance/internal/utils/mapping"
)

const cashColumns = `transaction_id, transaction_number, type, amount, description, category, date, status, payment_method, reference_number, account_id, journal_entry_id, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxCashTransactionRepository struct {
	BaseRepository
}

// newPgxCashTransactionRepository creates a new repository for cash ledger data.
func newPgxCashTransactionRepository(pool *pgxpool.Pool) portsrepo.CashTransactionRepositoryFacade {
	return &PgxCashTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CashTransactionRepositoryFacade = (*PgxCashTransactionRepository)(nil)

func scanCashTransaction(row pgx.Row) (models.CashTransaction, error) {
	var m models.CashTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.TransactionNumber,
		&m.Type,
		&m.Amount,
		&m.Description,
		&m.Category,
		&m.Date,
		&m.Status,
		&m.PaymentMethod,
		&m.ReferenceNumber,
		&m.AccountID,
		&m.JournalEntryID,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// allocateTransactionNumber produces the next TXN-YYYYMMDD-NNN number within
// tx; the unique constraint on transaction_number guards concurrent
// allocations and the caller retries on collision.
func allocateTransactionNumber(ctx context.Context, tx pgx.Tx, date time.Time) (string, error) {
	prefix := fmt.Sprintf("TXN-%s-", date.Format("20060102"))

	var maxSuffix int
	query := `
		SELECT COALESCE(MAX(CAST(split_part(transaction_number, '-', 3) AS INTEGER)), 0)
		FROM cash_transactions
		WHERE transaction_number LIKE $1;
	`
	if err := tx.QueryRow(ctx, query, prefix+"%").Scan(&maxSuffix); err != nil {
		return "", fmt.Errorf("failed to scan max transaction number suffix: %w", err)
	}
	return nextSequencedNumber(prefix, maxSuffix), nil
}

// SaveCashTransaction persists the record, allocating its number in the same
// transaction and retrying on collision. The number is written back to txn.
func (r *PgxCashTransactionRepository) SaveCashTransaction(ctx context.Context, txn *domain.CashTransaction) error {
	var lastErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}

		err = r.saveInTx(ctx, tx, txn)
		if err != nil {
			_ = r.Rollback(ctx, tx)
			if isUniqueViolation(err) {
				lastErr = err
				continue
			}
			return err
		}

		if err := r.Commit(ctx, tx); err != nil {
			return err
		}
		return nil
	}
	return fmt.Errorf("failed to allocate transaction number after %d attempts: %w", maxNumberAttempts, lastErr)
}

func (r *PgxCashTransactionRepository) saveInTx(ctx context.Context, tx pgx.Tx, txn *domain.CashTransaction) error {
	number, err := allocateTransactionNumber(ctx, tx, txn.Date)
	if err != nil {
		return err
	}
	txn.TransactionNumber = number

	m := mapping.ToModelCashTransaction(*txn)
	query := `
		INSERT INTO cash_transactions (` + cashColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID,
		m.TransactionNumber,
		m.Type,
		m.Amount,
		m.Description,
		m.Category,
		m.Date,
		m.Status,
		m.PaymentMethod,
		m.ReferenceNumber,
		m.AccountID,
		m.JournalEntryID,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cash transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindCashTransactionByID retrieves a cash record by its ID.
func (r *PgxCashTransactionRepository) FindCashTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error) {
	query := `SELECT ` + cashColumns + ` FROM cash_transactions WHERE transaction_id = $1;`

	m, err := scanCashTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cash transaction %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainCashTransaction(m)
	return &txn, nil
}

// ListCashTransactions returns a page of cash records, newest first, plus the
// total count.
func (r *PgxCashTransactionRepository) ListCashTransactions(ctx context.Context, limit, offset int) ([]domain.CashTransaction, int64, error) {
	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM cash_transactions;`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count cash transactions: %w", err)
	}

	query := `SELECT ` + cashColumns + ` FROM cash_transactions ORDER BY date DESC, transaction_number DESC LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query cash transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]domain.CashTransaction, 0, limit)
	for rows.Next() {
		m, err := scanCashTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan cash transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainCashTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate cash transaction rows: %w", err)
	}
	return txns, total, nil
}

// MarkJournalized links the record to its synthesized journal entry and flips
// its status to COMPLETED.
func (r *PgxCashTransactionRepository) MarkJournalized(ctx context.Context, transactionID, entryID string, userID string, now time.Time) error {
	query := `
		UPDATE cash_transactions
		SET journal_entry_id = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, entryID, string(domain.CashCompleted), now, userID)
	if err != nil {
		return fmt.Errorf("failed to mark cash transaction %s journalized: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
