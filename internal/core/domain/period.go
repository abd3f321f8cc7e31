package domain

import "time"

// PeriodStatus is the single source of truth for whether a period accepts
// postings. (The legacy screens modelled this both as an enum and a boolean;
// only the enum is stored, the boolean is derived.)
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// FinancialPeriod is a bounded, non-overlapping date range gating which dates
// may receive new or modified journal entries.
type FinancialPeriod struct {
	PeriodID  string       `json:"periodID"` // Primary key (UUID)
	Name      string       `json:"name"`
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"` // Inclusive
	Status    PeriodStatus `json:"status"`
	AuditFields
}

// IsClosed reports whether the period rejects mutations.
func (p FinancialPeriod) IsClosed() bool {
	return p.Status == PeriodClosed
}

// Contains reports whether the given date falls inside the period.
// Comparison is on calendar dates, not clock times.
func (p FinancialPeriod) Contains(t time.Time) bool {
	day := t.Truncate(24 * time.Hour)
	return !day.Before(p.StartDate.Truncate(24*time.Hour)) && !day.After(p.EndDate.Truncate(24*time.Hour))
}
