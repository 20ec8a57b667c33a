package services

import (
	"context"
	"time"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
)

// ReportingSvc defines aggregate reporting operations over a user's data
type ReportingSvc interface {
	// GetNetWorth computes the asset, liability, and net totals across a user's active accounts.
	GetNetWorth(ctx context.Context, userID string) (*domain.NetWorth, error)

	// GetDashboard assembles the dashboard summary: net worth, accounts,
	// current-month budget progress, and upcoming planned payments.
	GetDashboard(ctx context.Context, userID string, now time.Time) (*domain.DashboardSummary, error)
}
