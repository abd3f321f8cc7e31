package models

import "time"

// PeriodStatus mirrors domain.PeriodStatus at the storage layer.
type PeriodStatus string

// FinancialPeriod is the DB representation of a financial period row.
type FinancialPeriod struct {
	PeriodID  string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    PeriodStatus
	AuditFields
}
