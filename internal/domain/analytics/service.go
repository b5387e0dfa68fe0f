package analytics

import "context"

type AnalyticsService interface {
	MonthlyBreakdown(ctx context.Context, tenantID string, year int) ([]MonthlyLeaveCount, error)
	Overview(ctx context.Context, tenantID string) (LeaveOverview, error)
	UsageByType(ctx context.Context, tenantID string, year int) ([]TypeUsage, error)
}

// ZeroFillMonths expands sparse month buckets into a full 12-entry slice so
// clients can chart the year without gap handling.
func ZeroFillMonths(sparse []MonthlyLeaveCount) []MonthlyLeaveCount {
	byMonth := make(map[int]MonthlyLeaveCount, len(sparse))
	for _, m := range sparse {
		byMonth[m.Month] = m
	}

	full := make([]MonthlyLeaveCount, 0, 12)
	for month := 1; month <= 12; month++ {
		if m, ok := byMonth[month]; ok {
			full = append(full, m)
			continue
		}
		full = append(full, MonthlyLeaveCount{Month: month})
	}
	return full
}
