package services

import (
	portsrepo "github.com/fajarprasetia/smartone-finance/internal/core/ports/repositories"
	portssvc "github.com/fajarprasetia/smartone-finance/internal/core/ports/services"
)

// Repositories bundles every repository the services need. The container is
// assembled once at startup from the concrete pgsql implementations.
type Repositories struct {
	Account   portsrepo.AccountRepositoryFacade
	Period    portsrepo.PeriodRepositoryFacade
	Journal   portsrepo.JournalEntryRepositoryFacade
	Budget    portsrepo.BudgetRepositoryFacade
	Cash      portsrepo.CashTransactionRepositoryFacade
	Order     portsrepo.OrderRepositoryFacade
	Reporting portsrepo.ReportingRepositoryFacade
}

// NewServiceContainer wires every service with its repository dependencies.
// The cash adapter posts through the journal service rather than owning any
// balance logic of its own.
func NewServiceContainer(repos Repositories) *portssvc.ServiceContainer {
	journalSvc := NewJournalService(repos.Journal, repos.Account, repos.Period)

	return &portssvc.ServiceContainer{
		Account:    NewAccountService(repos.Account),
		Period:     NewPeriodService(repos.Period),
		Journal:    journalSvc,
		Budget:     NewBudgetService(repos.Budget, repos.Account, repos.Period),
		Cash:       NewCashService(repos.Cash, repos.Account, repos.Period, journalSvc),
		Receivable: NewReceivableService(repos.Order),
		Reporting:  NewReportingService(repos.Reporting, repos.Account, repos.Period, repos.Budget),
	}
}
