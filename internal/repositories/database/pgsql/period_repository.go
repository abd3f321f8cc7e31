package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fajarprasetia/smartone-finance/internal/apperrors"
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	portsrepo "github.com/fajarprasetia/smartone-finance/internal/core/ports/repositories"
	"github.com/fajarprasetia/smartone-finance/internal/models"
	"github.com/fajarprasetia/smartone-finance/internal/utils/mapping"
)

const periodColumns = `period_id, name, start_date, end_date, status, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for financial period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func scanPeriod(row pgx.Row) (models.FinancialPeriod, error) {
	var m models.FinancialPeriod
	err := row.Scan(
		&m.PeriodID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePeriod inserts a new financial period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.FinancialPeriod) error {
	m := mapping.ToModelPeriod(period)

	query := `
		INSERT INTO financial_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PeriodID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: period %s already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save period %s: %w", m.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.FinancialPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM financial_periods WHERE period_id = $1;`

	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}

	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

// FindPeriodContaining returns the period whose date range covers the given
// date. Comparison is on calendar dates.
func (r *PgxPeriodRepository) FindPeriodContaining(ctx context.Context, date time.Time) (*domain.FinancialPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM financial_periods
		WHERE start_date::date <= $1::date AND end_date::date >= $1::date
		ORDER BY start_date
		LIMIT 1;
	`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period containing %s: %w", date.Format("2006-01-02"), err)
	}

	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

// ListPeriods returns all periods, newest first.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.FinancialPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM financial_periods ORDER BY start_date DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods: %w", err)
	}
	defer rows.Close()

	periods := make([]domain.FinancialPeriod, 0)
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period row: %w", err)
		}
		periods = append(periods, mapping.ToDomainPeriod(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate period rows: %w", err)
	}
	return periods, nil
}

// FindOverlappingPeriod returns any period intersecting [start, end].
func (r *PgxPeriodRepository) FindOverlappingPeriod(ctx context.Context, start, end time.Time) (*domain.FinancialPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM financial_periods
		WHERE start_date::date <= $2::date AND end_date::date >= $1::date
		LIMIT 1;
	`
	m, err := scanPeriod(r.Pool.QueryRow(ctx, query, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to check period overlap: %w", err)
	}

	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

// ClosePeriod transitions an OPEN period to CLOSED. Closing an already closed
// period affects no rows and maps to ErrPeriodAlreadyClosed.
func (r *PgxPeriodRepository) ClosePeriod(ctx context.Context, periodID string, userID string, now time.Time) error {
	query := `
		UPDATE financial_periods
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE period_id = $1 AND status = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, periodID, string(domain.PeriodClosed), now, userID, string(domain.PeriodOpen))
	if err != nil {
		return fmt.Errorf("failed to close period %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPeriodAlreadyClosed
	}
	return nil
}
