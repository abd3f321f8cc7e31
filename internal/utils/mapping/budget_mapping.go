package mapping

import (
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	"github.com/fajarprasetia/smartone-finance/internal/models"
)

// ToModelBudget converts a domain budget header to its DB model.
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:    d.BudgetID,
		Name:        d.Name,
		Year:        d.Year,
		Description: d.Description,
		Department:  d.Department,
		PeriodID:    d.PeriodID,
		TotalAmount: d.TotalAmount,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a DB budget model to the domain representation.
// Items are loaded separately.
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:    m.BudgetID,
		Name:        m.Name,
		Year:        m.Year,
		Description: m.Description,
		Department:  m.Department,
		PeriodID:    m.PeriodID,
		TotalAmount: m.TotalAmount,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBudgetItem converts a domain budget line to its DB model.
func ToModelBudgetItem(d domain.BudgetItem) models.BudgetItem {
	return models.BudgetItem{
		ItemID:      d.ItemID,
		BudgetID:    d.BudgetID,
		AccountID:   d.AccountID,
		Description: d.Description,
		Amount:      d.Amount,
	}
}

// ToDomainBudgetItem converts a DB budget line model to the domain
// representation, carrying joined account code/name when present.
func ToDomainBudgetItem(m models.BudgetItem) domain.BudgetItem {
	return domain.BudgetItem{
		ItemID:      m.ItemID,
		BudgetID:    m.BudgetID,
		AccountID:   m.AccountID,
		AccountCode: m.AccountCode,
		AccountName: m.AccountName,
		Description: m.Description,
		Amount:      m.Amount,
	}
}
