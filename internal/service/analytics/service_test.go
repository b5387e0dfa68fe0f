package analytics

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
	"github.com/leavedesk/leavedesk-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAnalyticsDB *database.DB

func analyticsTestInit(t *testing.T) {
	t.Helper()
	if testAnalyticsDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	var err error
	testAnalyticsDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")
}

type analyticsFixture struct {
	tenantID    string
	employeeID  string
	leaveTypeID string
}

func newAnalyticsFixture(t *testing.T, ctx context.Context) analyticsFixture {
	t.Helper()
	var f analyticsFixture

	err := testAnalyticsDB.QueryRow(ctx, `
		INSERT INTO tenants (name, email, password)
		VALUES ($1, $2, 'hashed')
		RETURNING id
	`, fmt.Sprintf("Acme %d", time.Now().UnixNano()),
		fmt.Sprintf("acme-%d@example.com", time.Now().UnixNano()),
	).Scan(&f.tenantID)
	require.NoError(t, err)

	var levelID string
	err = testAnalyticsDB.QueryRow(ctx, `
		INSERT INTO levels (tenant_id, name) VALUES ($1, $2) RETURNING id
	`, f.tenantID, fmt.Sprintf("Level %d", time.Now().UnixNano())).Scan(&levelID)
	require.NoError(t, err)

	err = testAnalyticsDB.QueryRow(ctx, `
		INSERT INTO leave_types (tenant_id, level_id, name, default_balance)
		VALUES ($1, $2, 'Annual Leave', 20)
		RETURNING id
	`, f.tenantID, levelID).Scan(&f.leaveTypeID)
	require.NoError(t, err)

	err = testAnalyticsDB.QueryRow(ctx, `
		INSERT INTO employees (tenant_id, staff_id, first_name, surname, email, password, is_active)
		VALUES ($1, $2, 'Chart', 'Fixture', $3, 'hashed', TRUE)
		RETURNING id
	`, f.tenantID,
		fmt.Sprintf("S-%d", time.Now().UnixNano()),
		fmt.Sprintf("chart-%d@example.com", time.Now().UnixNano()),
	).Scan(&f.employeeID)
	require.NoError(t, err)

	return f
}

func (f analyticsFixture) insertHistory(t *testing.T, ctx context.Context, startDate time.Time, status string) {
	t.Helper()
	_, err := testAnalyticsDB.Exec(ctx, `
		INSERT INTO leave_history (
			tenant_id, employee_id, leave_type_id, start_date, resumption_date,
			duration, reason, status, approval_count
		) VALUES ($1, $2, $3, $4, $5, 2, 'chart fixture', $6, 0)
	`, f.tenantID, f.employeeID, f.leaveTypeID, startDate, startDate.AddDate(0, 0, 2), status)
	require.NoError(t, err)
}

func TestAnalyticsService_MonthlyBreakdown_YearFilterOptional(t *testing.T) {
	ctx := context.Background()
	analyticsTestInit(t)
	f := newAnalyticsFixture(t, ctx)
	svc := NewService(postgresql.NewAnalyticsRepository(testAnalyticsDB))

	march2023 := time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC)
	march2024 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	f.insertHistory(t, ctx, march2023, "approved")
	f.insertHistory(t, ctx, march2024, "approved")
	f.insertHistory(t, ctx, march2024, "pending")

	// A specific year narrows the counts to that year.
	filtered, err := svc.MonthlyBreakdown(ctx, f.tenantID, 2024)
	require.NoError(t, err)
	require.Len(t, filtered, 12)
	assert.Equal(t, 2, filtered[2].Total)
	assert.Equal(t, 1, filtered[2].Approved)
	assert.Equal(t, 1, filtered[2].Pending)

	// No year means every year counts.
	all, err := svc.MonthlyBreakdown(ctx, f.tenantID, 0)
	require.NoError(t, err)
	require.Len(t, all, 12)
	assert.Equal(t, 3, all[2].Total)
	assert.Equal(t, 2, all[2].Approved)
	assert.Equal(t, 1, all[2].Pending)
}
