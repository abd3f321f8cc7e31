package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fajarprasetia/smartone-finance/internal/apperrors"
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	portsrepo "github.com/fajarprasetia/smartone-finance/internal/core/ports/repositories"
	portssvc "github.com/fajarprasetia/smartone-finance/internal/core/ports/services"
	"github.com/fajarprasetia/smartone-finance/internal/dto"
	"github.com/fajarprasetia/smartone-finance/internal/middleware"
)

var ErrPeriodDatesInverted = fmt.Errorf("%w: period start date must not be after end date", apperrors.ErrValidation)

type periodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
}

// NewPeriodService creates the financial period registry service.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod creates an OPEN period after checking that its date range does
// not overlap an existing one.
func (s *periodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.FinancialPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.StartDate.After(req.EndDate) {
		return nil, ErrPeriodDatesInverted
	}

	existing, err := s.periodRepo.FindOverlappingPeriod(ctx, req.StartDate, req.EndDate)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check period overlap: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: date range overlaps period %q", apperrors.ErrValidation, existing.Name)
	}

	now := time.Now().UTC()
	period := domain.FinancialPeriod{
		PeriodID:  uuid.NewString(),
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		logger.Error("Failed to save period", slog.String("error", err.Error()), slog.String("name", period.Name))
		return nil, err
	}

	logger.Info("Financial period created", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	return &period, nil
}

func (s *periodService) GetPeriodByID(ctx context.Context, periodID string) (*domain.FinancialPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrPeriodNotFound, periodID)
		}
		return nil, err
	}
	return period, nil
}

func (s *periodService) ListPeriods(ctx context.Context) ([]domain.FinancialPeriod, error) {
	return s.periodRepo.ListPeriods(ctx)
}

// FindPeriodContaining returns the period covering the given date, or
// ErrPeriodNotFound when no period does.
func (s *periodService) FindPeriodContaining(ctx context.Context, date time.Time) (*domain.FinancialPeriod, error) {
	period, err := s.periodRepo.FindPeriodContaining(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no period covers %s", apperrors.ErrPeriodNotFound, date.Format("2006-01-02"))
		}
		return nil, err
	}
	return period, nil
}

// ClosePeriod transitions an OPEN period to CLOSED. Closing is idempotent in
// intent but repeated calls are rejected so callers notice stale state.
func (s *periodService) ClosePeriod(ctx context.Context, periodID string, userID string) (*domain.FinancialPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.GetPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.IsClosed() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrPeriodAlreadyClosed, period.Name)
	}

	now := time.Now().UTC()
	if err := s.periodRepo.ClosePeriod(ctx, periodID, userID, now); err != nil {
		logger.Error("Failed to close period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		return nil, err
	}

	period.Status = domain.PeriodClosed
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID

	logger.Info("Financial period closed", slog.String("period_id", periodID), slog.String("name", period.Name))
	return period, nil
}
