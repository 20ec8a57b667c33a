package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	portsrepo "github.com/pennyflow/penny_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/pennyflow/penny_tracker_app/internal/core/ports/services"
	"github.com/pennyflow/penny_tracker_app/internal/middleware"
	"github.com/pennyflow/penny_tracker_app/internal/utils/recurrence"
	"github.com/shopspring/decimal"
)

// upcomingWindow bounds how far ahead the dashboard projects planned payments.
const upcomingWindow = 30 * 24 * time.Hour

// upcomingPerPayment caps how many occurrences a single payment contributes.
const upcomingPerPayment = 5

type ReportingService struct {
	accountRepo        portsrepo.AccountRepositoryFacade
	plannedPaymentRepo portsrepo.PlannedPaymentRepositoryFacade
	budgetSvc          portssvc.BudgetReaderSvc
}

func NewReportingService(
	accountRepo portsrepo.AccountRepositoryFacade,
	plannedPaymentRepo portsrepo.PlannedPaymentRepositoryFacade,
	budgetSvc portssvc.BudgetReaderSvc,
) *ReportingService {
	return &ReportingService{
		accountRepo:        accountRepo,
		plannedPaymentRepo: plannedPaymentRepo,
		budgetSvc:          budgetSvc,
	}
}

// GetNetWorth sums current balances across a user's active accounts. Asset
// account types add to the asset total; liability types (credit cards, loans)
// add to the liability total. Net worth is assets minus liabilities.
func (s *ReportingService) GetNetWorth(ctx context.Context, userID string) (*domain.NetWorth, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccounts(ctx, userID, false)
	if err != nil {
		logger.Error("Failed to list accounts for net worth", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	assets := decimal.Zero
	liabilities := decimal.Zero
	for _, account := range accounts {
		if account.AccountType.IsLiability() {
			liabilities = liabilities.Add(account.CurrentBalance)
		} else {
			assets = assets.Add(account.CurrentBalance)
		}
	}

	return &domain.NetWorth{
		Assets:      assets,
		Liabilities: liabilities,
		Total:       assets.Sub(liabilities),
		AsOf:        time.Now(),
	}, nil
}

// GetDashboard assembles the dashboard summary: net worth, active accounts,
// current-month budget progress, and planned payment occurrences projected
// over the next thirty days.
func (s *ReportingService) GetDashboard(ctx context.Context, userID string, now time.Time) (*domain.DashboardSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	netWorth, err := s.GetNetWorth(ctx, userID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, userID, false)
	if err != nil {
		logger.Error("Failed to list accounts for dashboard", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}

	budgetProgress, err := s.budgetSvc.ListBudgetProgress(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.upcomingPayments(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSummary{
		NetWorth:         *netWorth,
		Accounts:         accounts,
		BudgetProgress:   budgetProgress,
		UpcomingPayments: upcoming,
	}, nil
}

// upcomingPayments projects occurrences of every planned payment inside the
// dashboard window, sorted by due date. Payments with broken recurrence
// configurations are skipped rather than failing the whole dashboard.
func (s *ReportingService) upcomingPayments(ctx context.Context, userID string, now time.Time) ([]domain.UpcomingPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payments, err := s.plannedPaymentRepo.ListPlannedPayments(ctx, userID)
	if err != nil {
		logger.Error("Failed to list planned payments for dashboard", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list planned payments: %w", err)
	}

	horizon := now.Add(upcomingWindow)
	upcoming := []domain.UpcomingPayment{}
	for _, p := range payments {
		occurrences, err := recurrence.Upcoming(p, now, upcomingPerPayment)
		if err != nil {
			if errors.Is(err, recurrence.ErrUnschedulable) || errors.Is(err, recurrence.ErrUnknownRecurrence) {
				logger.Warn("Skipping planned payment with unusable recurrence",
					slog.String("planned_payment_id", p.PlannedPaymentID))
				continue
			}
			return nil, err
		}
		for _, due := range occurrences {
			if due.After(horizon) {
				break
			}
			upcoming = append(upcoming, domain.UpcomingPayment{
				PlannedPaymentID: p.PlannedPaymentID,
				Name:             p.Name,
				Type:             p.Type,
				Amount:           p.Amount,
				DueDate:          due,
			})
		}
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(upcoming[j].DueDate)
	})
	return upcoming, nil
}
