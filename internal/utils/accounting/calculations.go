package accounting

import (
	"fmt"

	"github.com/fajarprasetia/smartone-finance/internal/apperrors"
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum debit/credit mismatch accepted on an entry.
// Amounts keyed in from the finance screens are rounded to two places, so a
// residual of one cent is treated as balanced.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// SignedAmount applies the accounting sign convention to one ledger line.
// DEBIT increases ASSET/EXPENSE balances and decreases the rest; CREDIT is
// the mirror. This is the single convention used by posting, trial-balance
// rows and budget actuals.
func SignedAmount(accountType domain.AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return debit.Sub(credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
}

// EntryTotals sums the debit and credit sides of an entry's lines.
func EntryTotals(items []domain.JournalEntryItem) (debits, credits decimal.Decimal) {
	debits = decimal.Zero
	credits = decimal.Zero
	for _, item := range items {
		debits = debits.Add(item.Debit)
		credits = credits.Add(item.Credit)
	}
	return debits, credits
}

// ValidateEntryBalance checks the double-entry invariant on a set of lines:
// non-negative sides, at least one side set per line, and debit/credit totals
// equal within BalanceTolerance. Returns *apperrors.UnbalancedEntryError
// (which matches apperrors.ErrValidation) when the totals differ.
func ValidateEntryBalance(items []domain.JournalEntryItem) error {
	for _, item := range items {
		if item.Debit.IsNegative() || item.Credit.IsNegative() {
			return fmt.Errorf("%w: debit and credit must be non-negative for account %s", apperrors.ErrValidation, item.AccountID)
		}
		if item.Debit.IsZero() && item.Credit.IsZero() {
			return fmt.Errorf("%w: line for account %s has neither debit nor credit", apperrors.ErrValidation, item.AccountID)
		}
	}

	debits, credits := EntryTotals(items)
	if debits.Sub(credits).Abs().GreaterThan(BalanceTolerance) {
		return &apperrors.UnbalancedEntryError{TotalDebits: debits, TotalCredits: credits}
	}
	return nil
}

// BalanceChanges folds an entry's lines into one net signed delta per
// account, the shape the posting transaction applies to account balances.
func BalanceChanges(items []domain.JournalEntryItem, accountTypes map[string]domain.AccountType) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(items))
	for _, item := range items {
		accountType, ok := accountTypes[item.AccountID]
		if !ok {
			return nil, fmt.Errorf("account type not found for account %s", item.AccountID)
		}
		signed, err := SignedAmount(accountType, item.Debit, item.Credit)
		if err != nil {
			return nil, fmt.Errorf("line for account %s: %w", item.AccountID, err)
		}
		changes[item.AccountID] = changes[item.AccountID].Add(signed)
	}
	return changes, nil
}

// VariancePercentage computes round(variance / budget * 100), returning 0
// when the budget is zero to avoid division by zero.
func VariancePercentage(variance, budget decimal.Decimal) int64 {
	if budget.IsZero() {
		return 0
	}
	return variance.Div(budget).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
