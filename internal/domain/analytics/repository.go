package analytics

import "context"

// AnalyticsRepository aggregates leave_history rows. Grouping is always by
// the request's start date, not the date it was reviewed.
type AnalyticsRepository interface {
	MonthlyCounts(ctx context.Context, tenantID string, year int) ([]MonthlyLeaveCount, error)
	Overview(ctx context.Context, tenantID string) (LeaveOverview, error)
	UsageByType(ctx context.Context, tenantID string, year int) ([]TypeUsage, error)
}
