package services

import (
	portsrepo "github.com/pennyflow/penny_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/pennyflow/penny_tracker_app/internal/core/ports/services"
	"github.com/pennyflow/penny_tracker_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Category = NewCategoryService(repos.CategoryRepo, cfg.DefaultCategories)

	// Transaction service owns balance maintenance; planned payments execute
	// through it so every ledger write takes the same path.
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo)
	container.PlannedPayment = NewPlannedPaymentService(repos.PlannedPaymentRepo, container.Transaction)

	container.Budget = NewBudgetService(repos.BudgetRepo, repos.CategoryRepo, repos.TransactionRepo)
	container.Reporting = NewReportingService(repos.AccountRepo, repos.PlannedPaymentRepo, container.Budget)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade        = (*AccountService)(nil)
	_ portssvc.TransactionSvcFacade    = (*TransactionService)(nil)
	_ portssvc.PlannedPaymentSvcFacade = (*PlannedPaymentService)(nil)
	_ portssvc.CategorySvcFacade       = (*CategoryService)(nil)
	_ portssvc.BudgetSvcFacade         = (*BudgetService)(nil)
	_ portssvc.ReportingSvc            = (*ReportingService)(nil)
)
