package dto

import (
	"time"

	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
)

// CreatePeriodRequest is the payload for creating a financial period.
type CreatePeriodRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required" time_format:"2006-01-02"`
	EndDate   time.Time `json:"endDate" binding:"required" time_format:"2006-01-02"`
}

// PeriodResponse is the API representation of a financial period. IsClosed
// is derived from Status for callers that still expect the boolean form.
type PeriodResponse struct {
	PeriodID  string              `json:"periodID"`
	Name      string              `json:"name"`
	StartDate time.Time           `json:"startDate"`
	EndDate   time.Time           `json:"endDate"`
	Status    domain.PeriodStatus `json:"status"`
	IsClosed  bool                `json:"isClosed"`
}

// ToPeriodResponse converts a domain period to its API shape.
func ToPeriodResponse(p *domain.FinancialPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:  p.PeriodID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    p.Status,
		IsClosed:  p.IsClosed(),
	}
}

// ToPeriodResponses converts a slice of domain periods.
func ToPeriodResponses(periods []domain.FinancialPeriod) []PeriodResponse {
	responses := make([]PeriodResponse, len(periods))
	for i := range periods {
		responses[i] = ToPeriodResponse(&periods[i])
	}
	return responses
}
