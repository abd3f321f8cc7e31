package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fajarprasetia/smartone-finance/internal/apperrors"
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	portsrepo "github.com/fajarprasetia/smartone-finance/internal/core/ports/repositories"
	portssvc "github.com/fajarprasetia/smartone-finance/internal/core/ports/services"
	"github.com/fajarprasetia/smartone-finance/internal/dto"
	"github.com/fajarprasetia/smartone-finance/internal/middleware"
)

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates the chart-of-accounts service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new account with a zero opening balance. Codes are
// unique; a duplicate surfaces as ErrDuplicate.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        code,
		Name:        strings.TrimSpace(req.Name),
		AccountType: req.AccountType,
		Subtype:     req.Subtype,
		Description: req.Description,
		Balance:     decimal.Zero,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", code))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

// ListAccounts returns accounts ordered by code, optionally filtered by type
// and active flag.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	filter := portsrepo.ListAccountsFilter{IsActive: params.IsActive}
	if params.AccountType != "" {
		accountType := domain.AccountType(strings.ToUpper(params.AccountType))
		switch accountType {
		case domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense:
			filter.AccountType = &accountType
		default:
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, params.AccountType)
		}
	}
	return s.accountRepo.ListAccounts(ctx, filter)
}

// DeactivateAccount marks an account inactive. History referencing the
// account stays intact; new entry lines against it are rejected.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
