package leave

import (
	"context"
	"testing"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTypeService() *TypeService {
	return NewTypeService(
		testLeaveDB,
		newTestBalanceService(),
		postgresql.NewLeaveTypeRepository(testLeaveDB),
		postgresql.NewLeaveBalanceRepository(testLeaveDB),
		postgresql.NewEmployeeRepository(testLeaveDB),
		postgresql.NewLevelRepository(testLeaveDB),
	)
}

func TestTypeService_AddLeaveType_SeedsExistingEmployees(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)

	tenantID := createTestTenant(t, ctx)
	levelID := createTestLevel(t, ctx, tenantID)
	onLevel := createTestEmployee(t, ctx, tenantID, testEmployeeOpts{levelID: &levelID})
	offLevel := createTestEmployee(t, ctx, tenantID, testEmployeeOpts{})

	svc := newTestTypeService()
	created, err := svc.AddLeaveType(ctx, tenantID, leave.CreateLeaveTypeRequest{
		Name:           "Compassionate Leave",
		DefaultBalance: 5,
		LevelID:        levelID,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, created.DefaultBalance)

	// Every employee on the level gets a ledger row at the default.
	assert.Equal(t, 5, balanceOf(t, ctx, onLevel.ID, created.ID))

	// Employees off the level get nothing.
	balanceRepo := postgresql.NewLeaveBalanceRepository(testLeaveDB)
	_, err = balanceRepo.Get(ctx, offLevel.ID, created.ID)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}

func TestTypeService_AddLeaveType_DuplicateNameInLevel(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)

	tenantID := createTestTenant(t, ctx)
	levelID := createTestLevel(t, ctx, tenantID)
	createTestLeaveType(t, ctx, tenantID, levelID, "Annual Leave", 20)

	svc := newTestTypeService()
	_, err := svc.AddLeaveType(ctx, tenantID, leave.CreateLeaveTypeRequest{
		Name:           "annual leave",
		DefaultBalance: 10,
		LevelID:        levelID,
	})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeExists)
}

func TestTypeService_UpdateLeaveType_DefaultChangeRebalances(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)

	tenantID := createTestTenant(t, ctx)
	levelID := createTestLevel(t, ctx, tenantID)
	emp := createTestEmployee(t, ctx, tenantID, testEmployeeOpts{levelID: &levelID})

	svc := newTestTypeService()
	created, err := svc.AddLeaveType(ctx, tenantID, leave.CreateLeaveTypeRequest{
		Name:           "Annual Leave",
		DefaultBalance: 20,
		LevelID:        levelID,
	})
	require.NoError(t, err)

	newDefault := 25
	updated, err := svc.UpdateLeaveType(ctx, tenantID, leave.UpdateLeaveTypeRequest{
		ID:             created.ID,
		DefaultBalance: &newDefault,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.DefaultBalance)
	assert.Equal(t, 25, balanceOf(t, ctx, emp.ID, created.ID))
}

func TestTypeService_DeleteLeaveType_RemovesLedgerRows(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)

	tenantID := createTestTenant(t, ctx)
	levelID := createTestLevel(t, ctx, tenantID)
	emp := createTestEmployee(t, ctx, tenantID, testEmployeeOpts{levelID: &levelID})

	svc := newTestTypeService()
	created, err := svc.AddLeaveType(ctx, tenantID, leave.CreateLeaveTypeRequest{
		Name:           "Annual Leave",
		DefaultBalance: 20,
		LevelID:        levelID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLeaveType(ctx, created.ID, tenantID))

	balanceRepo := postgresql.NewLeaveBalanceRepository(testLeaveDB)
	_, err = balanceRepo.Get(ctx, emp.ID, created.ID)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)

	typeRepo := postgresql.NewLeaveTypeRepository(testLeaveDB)
	_, err = typeRepo.GetByID(ctx, created.ID, tenantID)
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}
