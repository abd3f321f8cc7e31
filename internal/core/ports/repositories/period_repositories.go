package repositories

import (
	"context"
	"time"

	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
)

// PeriodRepositoryFacade provides access to financial period storage.
type PeriodRepositoryFacade interface {
	SavePeriod(ctx context.Context, period domain.FinancialPeriod) error
	FindPeriodByID(ctx context.Context, periodID string) (*domain.FinancialPeriod, error)
	FindPeriodContaining(ctx context.Context, date time.Time) (*domain.FinancialPeriod, error)
	ListPeriods(ctx context.Context) ([]domain.FinancialPeriod, error)

	// FindOverlappingPeriod returns any period whose range intersects
	// [start, end], or ErrNotFound.
	FindOverlappingPeriod(ctx context.Context, start, end time.Time) (*domain.FinancialPeriod, error)

	// ClosePeriod transitions an OPEN period to CLOSED.
	ClosePeriod(ctx context.Context, periodID string, userID string, now time.Time) error
}
