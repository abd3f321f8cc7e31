package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fajarprasetia/smartone-finance/internal/apperrors"
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	portsrepo "github.com/fajarprasetia/smartone-finance/internal/core/ports/repositories"
	portssvc "github.com/fajarprasetia/smartone-finance/internal/core/ports/services"
	"github.com/fajarprasetia/smartone-finance/internal/dto"
	"github.com/fajarprasetia/smartone-finance/internal/utils/accounting"
)

// reportingService builds the read-only reports by re-aggregating ledger
// lines rather than reading cached account balances, so a report is always
// internally consistent even while postings are in flight.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	periodRepo    portsrepo.PeriodRepositoryFacade
	budgetRepo    portsrepo.BudgetRepositoryFacade
}

// NewReportingService creates the reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, periodRepo portsrepo.PeriodRepositoryFacade, budgetRepo portsrepo.BudgetRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		periodRepo:    periodRepo,
		budgetRepo:    budgetRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance aggregates every account's posted activity for the requested
// window. With a periodId the window is that period's range; otherwise all
// activity up to asOfDate (default today). Total debits always equal total
// credits because only balanced entries ever post.
func (s *reportingService) TrialBalance(ctx context.Context, params dto.TrialBalanceParams) (*dto.TrialBalanceResponse, error) {
	var (
		from       *time.Time
		to         time.Time
		periodName string
	)

	switch {
	case params.PeriodID != "":
		period, err := s.periodRepo.FindPeriodByID(ctx, params.PeriodID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrPeriodNotFound, params.PeriodID)
		}
		start := period.StartDate
		from = &start
		to = period.EndDate
		periodName = period.Name
	case params.AsOfDate != nil:
		to = *params.AsOfDate
	default:
		to = time.Now().UTC()
	}

	activity, err := s.reportingRepo.GetAccountActivity(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate account activity: %w", err)
	}

	rows := make([]domain.TrialBalanceRow, 0, len(activity))
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, a := range activity {
		balance, err := accounting.SignedAmount(a.AccountType, a.Debit, a.Credit)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", a.AccountCode, err)
		}
		rows = append(rows, domain.TrialBalanceRow{
			AccountID:   a.AccountID,
			AccountCode: a.AccountCode,
			AccountName: a.AccountName,
			AccountType: a.AccountType,
			Debit:       a.Debit,
			Credit:      a.Credit,
			Balance:     balance,
		})
		totalDebit = totalDebit.Add(a.Debit)
		totalCredit = totalCredit.Add(a.Credit)
	}

	return &dto.TrialBalanceResponse{
		Accounts:   rows,
		Totals:     dto.TrialBalanceTotals{Debit: totalDebit, Credit: totalCredit},
		AsOfDate:   to,
		PeriodID:   params.PeriodID,
		PeriodName: periodName,
	}, nil
}

// BudgetVsActual compares each budgeted account's planned amount against its
// posted activity for the calendar year. Accounts with activity but no budget
// line are not reported; the comparison is scoped to the plan.
func (s *reportingService) BudgetVsActual(ctx context.Context, year int) ([]domain.BudgetVsActualRow, error) {
	budgeted, err := s.budgetRepo.GetBudgetedAmountsByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch budgeted amounts: %w", err)
	}
	if len(budgeted) == 0 {
		return []domain.BudgetVsActualRow{}, nil
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	activity, err := s.reportingRepo.GetAccountActivity(ctx, &yearStart, yearEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate account activity: %w", err)
	}
	activityByAccount := make(map[string]portsrepo.AccountActivity, len(activity))
	for _, a := range activity {
		activityByAccount[a.AccountID] = a
	}

	accountIDs := make([]string, 0, len(budgeted))
	for id := range budgeted {
		accountIDs = append(accountIDs, id)
	}
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch budgeted accounts: %w", err)
	}

	rows := make([]domain.BudgetVsActualRow, 0, len(budgeted))
	for accountID, budgetAmount := range budgeted {
		acc, found := accountsMap[accountID]
		if !found {
			continue
		}

		actual := decimal.Zero
		if a, ok := activityByAccount[accountID]; ok {
			actual, err = accounting.SignedAmount(acc.AccountType, a.Debit, a.Credit)
			if err != nil {
				return nil, fmt.Errorf("account %s: %w", acc.Code, err)
			}
		}

		variance := budgetAmount.Sub(actual)
		rows = append(rows, domain.BudgetVsActualRow{
			AccountID:          accountID,
			AccountCode:        acc.Code,
			AccountName:        acc.Name,
			BudgetAmount:       budgetAmount,
			ActualAmount:       actual,
			Variance:           variance,
			VariancePercentage: accounting.VariancePercentage(variance, budgetAmount),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].AccountCode < rows[j].AccountCode })
	return rows, nil
}

// CashFlow summarizes completed cash transactions per category over a range.
func (s *reportingService) CashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowSummary, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: start date must not be after end date", apperrors.ErrValidation)
	}

	byCategory, err := s.reportingRepo.GetCashFlowData(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate cash flow: %w", err)
	}

	totalIncome, totalExpense := decimal.Zero, decimal.Zero
	for _, c := range byCategory {
		totalIncome = totalIncome.Add(c.Income)
		totalExpense = totalExpense.Add(c.Expense)
	}

	return &domain.CashFlowSummary{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Net:          totalIncome.Sub(totalExpense),
		ByCategory:   byCategory,
	}, nil
}
