package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrPeriodNotFound indicates the referenced financial period does not exist.
var ErrPeriodNotFound = errors.New("financial period not found")

// ErrAccountNotFound indicates a referenced ledger account does not exist.
var ErrAccountNotFound = errors.New("account not found")

// ErrPeriodClosed indicates a mutation was attempted against a closed financial period.
var ErrPeriodClosed = errors.New("financial period is closed")

// ErrPeriodAlreadyClosed indicates a close was attempted on a period that is already closed.
var ErrPeriodAlreadyClosed = errors.New("financial period is already closed")

// ErrPostedImmutable indicates an edit or delete was attempted on a posted journal entry.
var ErrPostedImmutable = errors.New("posted journal entry is immutable")

// ErrUnauthorized indicates the request carries no valid identity.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected failure in the persistence layer or below.
var ErrInternal = errors.New("internal error")

// UnbalancedEntryError reports a journal entry whose debit and credit sides
// differ beyond tolerance. It carries both totals so handlers can surface the
// computed difference to the caller.
type UnbalancedEntryError struct {
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("journal entry is not balanced: debits %s, credits %s, difference %s",
		e.TotalDebits.String(), e.TotalCredits.String(), e.Difference().String())
}

// Difference returns debits minus credits.
func (e *UnbalancedEntryError) Difference() decimal.Decimal {
	return e.TotalDebits.Sub(e.TotalCredits)
}

// Is lets callers match the error with errors.Is(err, apperrors.ErrValidation).
func (e *UnbalancedEntryError) Is(target error) bool {
	return target == ErrValidation
}
