package analytics

import (
	"context"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/analytics"
)

type Service struct {
	analytics.AnalyticsRepository
}

func NewService(analyticsRepository analytics.AnalyticsRepository) *Service {
	return &Service{AnalyticsRepository: analyticsRepository}
}

// MonthlyBreakdown implements analytics.AnalyticsService. The result always
// covers all twelve months, January first. Year is an optional filter; zero
// counts requests from every year.
func (s *Service) MonthlyBreakdown(ctx context.Context, tenantID string, year int) ([]analytics.MonthlyLeaveCount, error) {
	sparse, err := s.AnalyticsRepository.MonthlyCounts(ctx, tenantID, year)
	if err != nil {
		return nil, err
	}
	return analytics.ZeroFillMonths(sparse), nil
}

// Overview implements analytics.AnalyticsService.
func (s *Service) Overview(ctx context.Context, tenantID string) (analytics.LeaveOverview, error) {
	return s.AnalyticsRepository.Overview(ctx, tenantID)
}

// UsageByType implements analytics.AnalyticsService. Year is an optional
// filter; zero counts requests from every year.
func (s *Service) UsageByType(ctx context.Context, tenantID string, year int) ([]analytics.TypeUsage, error) {
	return s.AnalyticsRepository.UsageByType(ctx, tenantID, year)
}
