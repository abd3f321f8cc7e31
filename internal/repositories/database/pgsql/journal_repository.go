package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

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

const entryColumns = `entry_id, entry_number, entry_date, period_id, description, reference, status, original_entry_id, reversing_entry_id, created_at, created_by, last_updated_at, last_updated_by`

// maxNumberAttempts bounds the retry loop on entry number collisions.
const maxNumberAttempts = 5

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal entry data.
// It takes the account repository so balance changes happen inside the same
// transaction as the entry insert.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalEntryRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.JournalEntryRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.PeriodID,
		&m.Description,
		&m.Reference,
		&m.Status,
		&m.OriginalEntryID,
		&m.ReversingEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// nextSequencedNumber appends the next sequence to a date prefix, zero-padded
// to three digits. Past 999 the suffix simply grows a digit; split_part-based
// parsing in the allocators reads it back regardless of width.
func nextSequencedNumber(prefix string, maxSuffix int) string {
	return fmt.Sprintf("%s%03d", prefix, maxSuffix+1)
}

// allocateEntryNumber produces the next JE-YYYYMMDD-NNN number for the
// entry's date within tx. The unique constraint on entry_number is the real
// guard; a concurrent allocation of the same number fails the insert and the
// caller retries the whole transaction.
func allocateEntryNumber(ctx context.Context, tx pgx.Tx, date time.Time) (string, error) {
	prefix := fmt.Sprintf("JE-%s-", date.Format("20060102"))

	var maxSuffix int
	query := `
		SELECT COALESCE(MAX(CAST(split_part(entry_number, '-', 3) AS INTEGER)), 0)
		FROM journal_entries
		WHERE entry_number LIKE $1;
	`
	if err := tx.QueryRow(ctx, query, prefix+"%").Scan(&maxSuffix); err != nil {
		return "", fmt.Errorf("failed to scan max entry number suffix: %w", err)
	}
	return nextSequencedNumber(prefix, maxSuffix), nil
}

// saveEntryInTx allocates the entry number, inserts the header and items, and
// applies balance changes, all within the caller's transaction. The allocated
// number is written back to entry.
func (r *PgxJournalRepository) saveEntryInTx(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	number, err := allocateEntryNumber(ctx, tx, entry.EntryDate)
	if err != nil {
		return err
	}
	entry.EntryNumber = number

	m := mapping.ToModelJournalEntry(*entry)
	headerQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.EntryID,
		m.EntryNumber,
		m.EntryDate,
		m.PeriodID,
		m.Description,
		m.Reference,
		m.Status,
		m.OriginalEntryID,
		m.ReversingEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}

	if len(balanceChanges) > 0 {
		accountIDs := make([]string, 0, len(balanceChanges))
		for accountID := range balanceChanges {
			accountIDs = append(accountIDs, accountID)
		}
		if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
			return fmt.Errorf("failed to lock accounts: %w", err)
		}
		if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, entry.CreatedBy, entry.CreatedAt); err != nil {
			return fmt.Errorf("failed to apply balance changes: %w", err)
		}
	}

	return insertItemsInTx(ctx, tx, entry.Items)
}

func insertItemsInTx(ctx context.Context, tx pgx.Tx, items []domain.JournalEntryItem) error {
	itemQuery := `
		INSERT INTO journal_entry_items (item_id, entry_id, account_id, description, debit, credit, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		mi := mapping.ToModelJournalEntryItem(item)
		batch.Queue(itemQuery,
			mi.ItemID,
			mi.EntryID,
			mi.AccountID,
			mi.Description,
			mi.Debit,
			mi.Credit,
			mi.CreatedAt,
			mi.CreatedBy,
			mi.LastUpdatedAt,
			mi.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert journal entry items: %w", err)
	}
	return nil
}

// SaveEntry persists the entry and its items in one transaction, applying
// balance changes when present. Retries the whole transaction when the
// allocated entry number collides with a concurrent insert.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	var lastErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}

		if err := r.saveEntryInTx(ctx, tx, entry, balanceChanges); err != nil {
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
	return fmt.Errorf("failed to allocate entry number after %d attempts: %w", maxNumberAttempts, lastErr)
}

// FindEntryByID retrieves an entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

const itemJoinQuery = `
	SELECT i.item_id, i.entry_id, i.account_id, a.code, a.name, i.description, i.debit, i.credit,
	       i.created_at, i.created_by, i.last_updated_at, i.last_updated_by
	FROM journal_entry_items i
	JOIN accounts a ON a.account_id = i.account_id
`

func scanItem(row pgx.Row) (models.JournalEntryItem, error) {
	var m models.JournalEntryItem
	err := row.Scan(
		&m.ItemID,
		&m.EntryID,
		&m.AccountID,
		&m.AccountCode,
		&m.AccountName,
		&m.Description,
		&m.Debit,
		&m.Credit,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindItemsByEntryID retrieves an entry's lines joined with account detail.
func (r *PgxJournalRepository) FindItemsByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryItem, error) {
	query := itemJoinQuery + ` WHERE i.entry_id = $1 ORDER BY i.created_at, i.item_id;`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	ms := make([]models.JournalEntryItem, 0)
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item rows: %w", err)
	}
	return mapping.ToDomainJournalEntryItemSlice(ms), nil
}

// FindItemsByEntryIDs retrieves the lines for many entries in one query,
// keyed by entry ID.
func (r *PgxJournalRepository) FindItemsByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryItem, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalEntryItem{}, nil
	}

	query := itemJoinQuery + ` WHERE i.entry_id = ANY($1) ORDER BY i.entry_id, i.created_at, i.item_id;`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for entries: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.JournalEntryItem, len(entryIDs))
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		result[m.EntryID] = append(result[m.EntryID], mapping.ToDomainJournalEntryItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate item rows: %w", err)
	}
	return result, nil
}

// ListEntries returns a filtered, sorted page of entry headers plus the total
// count of matches.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter portsrepo.JournalEntryFilter) ([]domain.JournalEntry, int64, error) {
	where := " WHERE 1=1"
	args := []any{}
	argPos := 1

	addArg := func(clause string, value any) {
		where += fmt.Sprintf(clause, argPos)
		args = append(args, value)
		argPos++
	}

	if filter.Search != "" {
		addArg(" AND (entry_number ILIKE $%[1]d OR description ILIKE $%[1]d OR reference ILIKE $%[1]d)", "%"+filter.Search+"%")
	}
	if filter.PeriodID != "" {
		addArg(" AND period_id = $%d", filter.PeriodID)
	}
	if filter.Status != nil {
		addArg(" AND status = $%d", string(*filter.Status))
	}
	if filter.AccountID != "" {
		addArg(" AND entry_id IN (SELECT entry_id FROM journal_entry_items WHERE account_id = $%d)", filter.AccountID)
	}
	if filter.DateFrom != nil {
		addArg(" AND entry_date::date >= $%d::date", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addArg(" AND entry_date::date <= $%d::date", *filter.DateTo)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM journal_entries` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count journal entries: %w", err)
	}

	// SortColumn and SortDirection come from the service's whitelist, never
	// from raw user input.
	listQuery := fmt.Sprintf(
		`SELECT `+entryColumns+` FROM journal_entries%s ORDER BY %s %s, entry_id LIMIT $%d OFFSET $%d;`,
		where, filter.SortColumn, filter.SortDirection, argPos, argPos+1,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, filter.Limit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate journal entry rows: %w", err)
	}
	return entries, total, nil
}

// UpdateEntry rewrites the header and, when replaceItems is set, swaps the
// full item set; balance changes apply in the same transaction. Only DRAFT
// entries are updatable, so the header UPDATE is guarded on the row still
// being DRAFT: a concurrent transition (e.g. two requests both posting the
// same draft) matches zero rows and the losing transaction applies nothing.
func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry, items []domain.JournalEntryItem, balanceChanges map[string]decimal.Decimal, replaceItems bool) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		UPDATE journal_entries
		SET entry_date = $2, period_id = $3, description = $4, reference = $5, status = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE entry_id = $1 AND status = $9;
	`
	tag, err := tx.Exec(ctx, headerQuery,
		m.EntryID,
		m.EntryDate,
		m.PeriodID,
		m.Description,
		m.Reference,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		string(domain.Draft),
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry %s: %w", m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		// Deleted, or transitioned out of DRAFT by a concurrent request.
		return fmt.Errorf("%w: entry %s is no longer in DRAFT status", apperrors.ErrValidation, m.EntryID)
	}

	if replaceItems {
		if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_items WHERE entry_id = $1;`, m.EntryID); err != nil {
			return fmt.Errorf("failed to clear items for entry %s: %w", m.EntryID, err)
		}
		if err := insertItemsInTx(ctx, tx, items); err != nil {
			return err
		}
	}

	if len(balanceChanges) > 0 {
		accountIDs := make([]string, 0, len(balanceChanges))
		for accountID := range balanceChanges {
			accountIDs = append(accountIDs, accountID)
		}
		if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
			return fmt.Errorf("failed to lock accounts: %w", err)
		}
		if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, entry.LastUpdatedBy, entry.LastUpdatedAt); err != nil {
			return fmt.Errorf("failed to apply balance changes: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateEntryStatus flips only the status column.
func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CancelEntry atomically saves the posted reversing entry and marks the
// original CANCELLED with a link to it. The reversal's number allocation
// retries the whole transaction on collision, like SaveEntry.
func (r *PgxJournalRepository) CancelEntry(ctx context.Context, original domain.JournalEntry, reversal *domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	var lastErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}

		err = r.cancelEntryInTx(ctx, tx, original, reversal, balanceChanges)
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
	return fmt.Errorf("failed to allocate reversal entry number after %d attempts: %w", maxNumberAttempts, lastErr)
}

func (r *PgxJournalRepository) cancelEntryInTx(ctx context.Context, tx pgx.Tx, original domain.JournalEntry, reversal *domain.JournalEntry, balanceChanges map[string]decimal.Decimal) error {
	if err := r.saveEntryInTx(ctx, tx, reversal, balanceChanges); err != nil {
		return err
	}

	query := `
		UPDATE journal_entries
		SET status = $2, reversing_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND status = $6;
	`
	tag, err := tx.Exec(ctx, query,
		original.EntryID,
		string(domain.Cancelled),
		reversal.EntryID,
		original.LastUpdatedAt,
		original.LastUpdatedBy,
		string(domain.Posted),
	)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s cancelled: %w", original.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		// The entry was cancelled (or deleted) by a concurrent request.
		return fmt.Errorf("%w: entry %s is not in POSTED status", apperrors.ErrValidation, original.EntryID)
	}
	return nil
}

// DeleteEntry removes the entry and its items in one transaction.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_items WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete items for entry %s: %w", entryID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
