package postgresql

import (
	"context"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/analytics"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
)

type analyticsRepositoryImpl struct {
	db *database.DB
}

func NewAnalyticsRepository(db *database.DB) analytics.AnalyticsRepository {
	return &analyticsRepositoryImpl{db: db}
}

// MonthlyCounts implements analytics.AnalyticsRepository. Months without
// requests are absent from the result; the service zero-fills. A zero year
// aggregates across all years.
func (r *analyticsRepositoryImpl) MonthlyCounts(ctx context.Context, tenantID string, year int) ([]analytics.MonthlyLeaveCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXTRACT(MONTH FROM start_date)::int AS month,
			   COUNT(*) AS total,
			   COUNT(*) FILTER (WHERE status = 'approved') AS approved,
			   COUNT(*) FILTER (WHERE status = 'rejected') AS rejected,
			   COUNT(*) FILTER (WHERE status = 'pending') AS pending
		FROM leave_history
		WHERE tenant_id = $1 AND ($2 = 0 OR EXTRACT(YEAR FROM start_date) = $2)
		GROUP BY month
		ORDER BY month
	`

	rows, err := q.Query(ctx, query, tenantID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]analytics.MonthlyLeaveCount, 0, 12)
	for rows.Next() {
		var m analytics.MonthlyLeaveCount
		if err := rows.Scan(&m.Month, &m.Total, &m.Approved, &m.Rejected, &m.Pending); err != nil {
			return nil, err
		}
		counts = append(counts, m)
	}

	return counts, nil
}

// Overview implements analytics.AnalyticsRepository.
func (r *analyticsRepositoryImpl) Overview(ctx context.Context, tenantID string) (analytics.LeaveOverview, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM employees WHERE tenant_id = $1) AS total_employees,
			(SELECT COUNT(*) FROM employees WHERE tenant_id = $1 AND is_on_leave) AS employees_on_leave,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending_requests,
			COUNT(*) FILTER (WHERE status = 'approved') AS approved_requests,
			COUNT(*) FILTER (WHERE status = 'rejected') AS rejected_requests
		FROM leave_history
		WHERE tenant_id = $1
	`

	var overview analytics.LeaveOverview
	err := q.QueryRow(ctx, query, tenantID).Scan(
		&overview.TotalEmployees, &overview.EmployeesOnLeave,
		&overview.PendingRequests, &overview.ApprovedRequests, &overview.RejectedRequests,
	)
	if err != nil {
		return analytics.LeaveOverview{}, err
	}

	return overview, nil
}

// UsageByType implements analytics.AnalyticsRepository. A zero year
// aggregates across all years.
func (r *analyticsRepositoryImpl) UsageByType(ctx context.Context, tenantID string, year int) ([]analytics.TypeUsage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lt.id, lt.name,
			   COUNT(lr.id) AS requested,
			   COUNT(lr.id) FILTER (WHERE lr.status = 'approved') AS approved
		FROM leave_types lt
		LEFT JOIN leave_history lr
			ON lr.leave_type_id = lt.id
			AND ($2 = 0 OR EXTRACT(YEAR FROM lr.start_date) = $2)
		WHERE lt.tenant_id = $1
		GROUP BY lt.id, lt.name
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, tenantID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usages := make([]analytics.TypeUsage, 0)
	for rows.Next() {
		var u analytics.TypeUsage
		if err := rows.Scan(&u.LeaveTypeID, &u.LeaveTypeName, &u.Requested, &u.Approved); err != nil {
			return nil, err
		}
		usages = append(usages, u)
	}

	return usages, nil
}
