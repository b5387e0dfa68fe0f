package level

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/employee"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/level"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
	"github.com/leavedesk/leavedesk-backend-go/internal/repository/postgresql"
	leaveService "github.com/leavedesk/leavedesk-backend-go/internal/service/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLevelDB *database.DB

func levelTestInit(t *testing.T) {
	t.Helper()
	if testLevelDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	var err error
	testLevelDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")
}

func newTestLevelService() *Service {
	balanceSvc := leaveService.NewBalanceService(
		testLevelDB,
		postgresql.NewLeaveTypeRepository(testLevelDB),
		postgresql.NewLeaveBalanceRepository(testLevelDB),
		postgresql.NewEmployeeRepository(testLevelDB),
	)
	return NewService(
		testLevelDB,
		balanceSvc,
		postgresql.NewLevelRepository(testLevelDB),
		postgresql.NewLeaveTypeRepository(testLevelDB),
		postgresql.NewLeaveBalanceRepository(testLevelDB),
		postgresql.NewEmployeeRepository(testLevelDB),
	)
}

func createLevelTestTenant(t *testing.T, ctx context.Context) string {
	t.Helper()
	var tenantID string
	err := testLevelDB.QueryRow(ctx, `
		INSERT INTO tenants (name, email, password)
		VALUES ($1, $2, 'hashed')
		RETURNING id
	`, fmt.Sprintf("Acme %d", time.Now().UnixNano()),
		fmt.Sprintf("acme-%d@example.com", time.Now().UnixNano()),
	).Scan(&tenantID)
	require.NoError(t, err)
	return tenantID
}

func createLevelTestEmployee(t *testing.T, ctx context.Context, tenantID string, levelID *string) employee.Employee {
	t.Helper()
	repo := postgresql.NewEmployeeRepository(testLevelDB)
	emp, err := repo.Create(ctx, employee.Employee{
		TenantID:  tenantID,
		StaffID:   fmt.Sprintf("S-%d", time.Now().UnixNano()),
		FirstName: "Test",
		Surname:   "Employee",
		Email:     fmt.Sprintf("emp-%d@example.com", time.Now().UnixNano()),
		Password:  "hashed",
		IsActive:  true,
		LevelID:   levelID,
	})
	require.NoError(t, err)
	return emp
}

func TestLevelService_AddLevel_DuplicateName(t *testing.T) {
	ctx := context.Background()
	levelTestInit(t)
	tenantID := createLevelTestTenant(t, ctx)
	svc := newTestLevelService()

	_, err := svc.AddLevel(ctx, tenantID, level.CreateLevelRequest{Name: "Senior"})
	require.NoError(t, err)

	// Names are unique per tenant, case-insensitively.
	_, err = svc.AddLevel(ctx, tenantID, level.CreateLevelRequest{Name: "senior"})
	assert.ErrorIs(t, err, level.ErrLevelExists)

	// The same name is fine in a different tenant.
	otherTenant := createLevelTestTenant(t, ctx)
	_, err = svc.AddLevel(ctx, otherTenant, level.CreateLevelRequest{Name: "Senior"})
	assert.NoError(t, err)
}

func TestLevelService_AssignLevel_RegeneratesLedger(t *testing.T) {
	ctx := context.Background()
	levelTestInit(t)
	tenantID := createLevelTestTenant(t, ctx)
	svc := newTestLevelService()

	created, err := svc.AddLevel(ctx, tenantID, level.CreateLevelRequest{Name: "Junior"})
	require.NoError(t, err)

	typeRepo := postgresql.NewLeaveTypeRepository(testLevelDB)
	leaveType, err := typeRepo.Create(ctx, leave.LeaveType{
		TenantID:       tenantID,
		LevelID:        created.ID,
		Name:           "Annual Leave",
		DefaultBalance: 15,
	})
	require.NoError(t, err)

	emp := createLevelTestEmployee(t, ctx, tenantID, nil)

	err = svc.AssignLevel(ctx, level.AssignLevelRequest{
		EmployeeID: emp.ID,
		LevelID:    created.ID,
		TenantID:   tenantID,
	})
	require.NoError(t, err)

	// The employee now carries the level and a fresh ledger at the default.
	updated, err := postgresql.NewEmployeeRepository(testLevelDB).GetByID(ctx, emp.ID, tenantID)
	require.NoError(t, err)
	require.NotNil(t, updated.LevelID)
	assert.Equal(t, created.ID, *updated.LevelID)

	balance, err := postgresql.NewLeaveBalanceRepository(testLevelDB).Get(ctx, emp.ID, leaveType.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, balance.Balance)
}

func TestLevelService_DeleteLevel_CascadesTypesAndLedger(t *testing.T) {
	ctx := context.Background()
	levelTestInit(t)
	tenantID := createLevelTestTenant(t, ctx)
	svc := newTestLevelService()

	created, err := svc.AddLevel(ctx, tenantID, level.CreateLevelRequest{Name: "Contractor"})
	require.NoError(t, err)

	typeRepo := postgresql.NewLeaveTypeRepository(testLevelDB)
	leaveType, err := typeRepo.Create(ctx, leave.LeaveType{
		TenantID:       tenantID,
		LevelID:        created.ID,
		Name:           "Annual Leave",
		DefaultBalance: 10,
	})
	require.NoError(t, err)

	emp := createLevelTestEmployee(t, ctx, tenantID, nil)
	require.NoError(t, svc.AssignLevel(ctx, level.AssignLevelRequest{
		EmployeeID: emp.ID,
		LevelID:    created.ID,
		TenantID:   tenantID,
	}))

	require.NoError(t, svc.DeleteLevel(ctx, created.ID, tenantID))

	_, err = svc.GetLevel(ctx, created.ID, tenantID)
	assert.ErrorIs(t, err, level.ErrLevelNotFound)

	_, err = typeRepo.GetByID(ctx, leaveType.ID, tenantID)
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)

	_, err = postgresql.NewLeaveBalanceRepository(testLevelDB).Get(ctx, emp.ID, leaveType.ID)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}
