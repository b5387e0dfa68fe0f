package leave

import (
	"context"
	"testing"

	"github.com/leavedesk/leavedesk-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBalanceService() *BalanceService {
	return NewBalanceService(
		testLeaveDB,
		postgresql.NewLeaveTypeRepository(testLeaveDB),
		postgresql.NewLeaveBalanceRepository(testLeaveDB),
		postgresql.NewEmployeeRepository(testLeaveDB),
	)
}

func setEmployeeGender(t *testing.T, ctx context.Context, employeeID, gender string) {
	t.Helper()
	_, err := testLeaveDB.Exec(ctx, `UPDATE employees SET gender = $2 WHERE id = $1`, employeeID, gender)
	require.NoError(t, err)
}

func TestBalanceService_GetBalances_GenderFilter(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)

	tenantID := createTestTenant(t, ctx)
	levelID := createTestLevel(t, ctx, tenantID)
	createTestLeaveType(t, ctx, tenantID, levelID, "Annual Leave", 20)
	createTestLeaveType(t, ctx, tenantID, levelID, "Maternity Leave", 90)
	createTestLeaveType(t, ctx, tenantID, levelID, "Paternity Leave", 10)

	emp := createTestEmployee(t, ctx, tenantID, testEmployeeOpts{levelID: &levelID})
	setEmployeeGender(t, ctx, emp.ID, "male")

	svc := newTestBalanceService()
	require.NoError(t, svc.RegenerateForLevel(ctx, emp.ID, levelID, tenantID))

	balances, err := svc.GetBalances(ctx, emp.ID, tenantID)
	require.NoError(t, err)

	require.Len(t, balances, 2)
	for _, b := range balances {
		require.NotNil(t, b.LeaveTypeName)
		assert.NotEqual(t, "Maternity Leave", *b.LeaveTypeName)
	}
}

func TestBalanceService_RegenerateForLevel_ReplacesLedger(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)

	tenantID := createTestTenant(t, ctx)
	oldLevel := createTestLevel(t, ctx, tenantID)
	createTestLeaveType(t, ctx, tenantID, oldLevel, "Annual Leave", 20)
	newLevel := createTestLevel(t, ctx, tenantID)
	createTestLeaveType(t, ctx, tenantID, newLevel, "Sabbatical", 30)
	createTestLeaveType(t, ctx, tenantID, newLevel, "Study Leave", 5)

	emp := createTestEmployee(t, ctx, tenantID, testEmployeeOpts{levelID: &oldLevel})
	svc := newTestBalanceService()
	require.NoError(t, svc.RegenerateForLevel(ctx, emp.ID, oldLevel, tenantID))

	// Moving to the new level replaces the old rows wholesale.
	require.NoError(t, svc.RegenerateForLevel(ctx, emp.ID, newLevel, tenantID))

	balances, err := postgresql.NewLeaveBalanceRepository(testLeaveDB).GetByEmployee(ctx, emp.ID, tenantID)
	require.NoError(t, err)
	require.Len(t, balances, 2)

	byName := map[string]int{}
	for _, b := range balances {
		require.NotNil(t, b.LeaveTypeName)
		byName[*b.LeaveTypeName] = b.Balance
	}
	assert.Equal(t, 30, byName["Sabbatical"])
	assert.Equal(t, 5, byName["Study Leave"])
	assert.NotContains(t, byName, "Annual Leave")
}

func TestBalanceService_RebalanceForTypeDefaultChange_Overwrites(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)

	tenantID := createTestTenant(t, ctx)
	levelID := createTestLevel(t, ctx, tenantID)
	typeID := createTestLeaveType(t, ctx, tenantID, levelID, "Annual Leave", 20)

	emp := createTestEmployee(t, ctx, tenantID, testEmployeeOpts{levelID: &levelID})
	svc := newTestBalanceService()
	require.NoError(t, svc.RegenerateForLevel(ctx, emp.ID, levelID, tenantID))

	// Spend a few days so the row no longer equals the default.
	balanceRepo := postgresql.NewLeaveBalanceRepository(testLeaveDB)
	require.NoError(t, balanceRepo.Reserve(ctx, emp.ID, typeID, 7))
	require.Equal(t, 13, balanceOf(t, ctx, emp.ID, typeID))

	// The rebalance is an absolute overwrite, not a delta.
	require.NoError(t, svc.RebalanceForTypeDefaultChange(ctx, typeID, 25))
	assert.Equal(t, 25, balanceOf(t, ctx, emp.ID, typeID))
}
