package leave

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/employee"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/notifier"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
	"github.com/leavedesk/leavedesk-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLeaveDB *database.DB

// noopNotifier swallows events; delivery is out of scope here.
type noopNotifier struct{}

func (noopNotifier) Notify(ctx context.Context, event notifier.Event) {}
func (noopNotifier) Close()                                           {}

func leaveTestInit(t *testing.T) {
	t.Helper()
	if testLeaveDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	var err error
	testLeaveDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")
}

func newTestRequestService() *RequestService {
	return NewRequestService(
		testLeaveDB,
		"http://localhost:3000",
		noopNotifier{},
		postgresql.NewLeaveTypeRepository(testLeaveDB),
		postgresql.NewLeaveBalanceRepository(testLeaveDB),
		postgresql.NewLeaveRequestRepository(testLeaveDB),
		postgresql.NewEmployeeRepository(testLeaveDB),
		postgresql.NewTenantRepository(testLeaveDB),
	)
}

func createTestTenant(t *testing.T, ctx context.Context) string {
	t.Helper()
	var tenantID string
	err := testLeaveDB.QueryRow(ctx, `
		INSERT INTO tenants (name, email, password)
		VALUES ($1, $2, 'hashed')
		RETURNING id
	`, fmt.Sprintf("Acme %d", time.Now().UnixNano()),
		fmt.Sprintf("acme-%d@example.com", time.Now().UnixNano()),
	).Scan(&tenantID)
	require.NoError(t, err)
	return tenantID
}

func createTestLevel(t *testing.T, ctx context.Context, tenantID string) string {
	t.Helper()
	var levelID string
	err := testLeaveDB.QueryRow(ctx, `
		INSERT INTO levels (tenant_id, name)
		VALUES ($1, $2)
		RETURNING id
	`, tenantID, fmt.Sprintf("Level %d", time.Now().UnixNano())).Scan(&levelID)
	require.NoError(t, err)
	return levelID
}

func createTestLeaveType(t *testing.T, ctx context.Context, tenantID, levelID, name string, defaultBalance int) string {
	t.Helper()
	var typeID string
	err := testLeaveDB.QueryRow(ctx, `
		INSERT INTO leave_types (tenant_id, level_id, name, default_balance)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, tenantID, levelID, name, defaultBalance).Scan(&typeID)
	require.NoError(t, err)
	return typeID
}

type testEmployeeOpts struct {
	isAdmin       bool
	lineManagerID *string
	relieverID    *string
	levelID       *string
}

func createTestEmployee(t *testing.T, ctx context.Context, tenantID string, opts testEmployeeOpts) employee.Employee {
	t.Helper()
	repo := postgresql.NewEmployeeRepository(testLeaveDB)
	emp, err := repo.Create(ctx, employee.Employee{
		TenantID:      tenantID,
		StaffID:       fmt.Sprintf("S-%d", time.Now().UnixNano()),
		FirstName:     "Test",
		Surname:       "Employee",
		Email:         fmt.Sprintf("emp-%d@example.com", time.Now().UnixNano()),
		Password:      "hashed",
		IsAdmin:       opts.isAdmin,
		IsActive:      true,
		LineManagerID: opts.lineManagerID,
		RelieverID:    opts.relieverID,
		LevelID:       opts.levelID,
	})
	require.NoError(t, err)
	return emp
}

// workflowFixture seeds a tenant with a level, a leave type, a manager, a
// reliever, an admin and a requester with a funded balance.
type workflowFixture struct {
	tenantID    string
	levelID     string
	leaveTypeID string
	manager     employee.Employee
	reliever    employee.Employee
	admin       employee.Employee
	requester   employee.Employee
}

func newWorkflowFixture(t *testing.T, ctx context.Context, defaultBalance int) workflowFixture {
	t.Helper()
	tenantID := createTestTenant(t, ctx)
	levelID := createTestLevel(t, ctx, tenantID)
	leaveTypeID := createTestLeaveType(t, ctx, tenantID, levelID, "Annual Leave", defaultBalance)

	manager := createTestEmployee(t, ctx, tenantID, testEmployeeOpts{})
	reliever := createTestEmployee(t, ctx, tenantID, testEmployeeOpts{})
	admin := createTestEmployee(t, ctx, tenantID, testEmployeeOpts{isAdmin: true})
	requester := createTestEmployee(t, ctx, tenantID, testEmployeeOpts{
		lineManagerID: &manager.ID,
		relieverID:    &reliever.ID,
		levelID:       &levelID,
	})

	return workflowFixture{
		tenantID:    tenantID,
		levelID:     levelID,
		leaveTypeID: leaveTypeID,
		manager:     manager,
		reliever:    reliever,
		admin:       admin,
		requester:   requester,
	}
}

func (f workflowFixture) createRequest(duration int) leave.CreateLeaveRequestRequest {
	start := time.Now().AddDate(0, 1, 0)
	return leave.CreateLeaveRequestRequest{
		EmployeeID:     f.requester.ID,
		TenantID:       f.tenantID,
		LeaveTypeID:    f.leaveTypeID,
		StartDate:      start.Format("2006-01-02"),
		ResumptionDate: start.AddDate(0, 0, duration).Format("2006-01-02"),
		Duration:       duration,
		Reason:         "testing",
	}
}

func balanceOf(t *testing.T, ctx context.Context, employeeID, leaveTypeID string) int {
	t.Helper()
	b, err := postgresql.NewLeaveBalanceRepository(testLeaveDB).Get(ctx, employeeID, leaveTypeID)
	require.NoError(t, err)
	return b.Balance
}

func TestRequestService_CreateRequest_ReservesBalance(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	f := newWorkflowFixture(t, ctx, 20)
	svc := newTestRequestService()

	created, err := svc.CreateRequest(ctx, f.createRequest(5))
	require.NoError(t, err)

	assert.Equal(t, leave.LeaveRequestStatusPending, created.Status)
	assert.Equal(t, 0, created.ApprovalCount)
	require.NotNil(t, created.LineManagerID)
	assert.Equal(t, f.manager.ID, *created.LineManagerID)
	assert.Equal(t, 15, balanceOf(t, ctx, f.requester.ID, f.leaveTypeID))

	// The summary snapshot is written at creation, not deferred to approval.
	assert.Equal(t, 20, created.BalanceBeforeLeave)
	assert.Equal(t, 15, created.RemainingDays)
	stored, err := svc.GetRequest(ctx, created.ID, f.tenantID)
	require.NoError(t, err)
	assert.Equal(t, 20, stored.BalanceBeforeLeave)
	assert.Equal(t, 15, stored.RemainingDays)

	// Requester is flagged on leave immediately.
	emp, err := postgresql.NewEmployeeRepository(testLeaveDB).GetByID(ctx, f.requester.ID, f.tenantID)
	require.NoError(t, err)
	assert.True(t, emp.IsOnLeave)
}

func TestRequestService_CreateRequest_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	f := newWorkflowFixture(t, ctx, 3)
	svc := newTestRequestService()

	_, err := svc.CreateRequest(ctx, f.createRequest(5))
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	// Nothing was reserved.
	assert.Equal(t, 3, balanceOf(t, ctx, f.requester.ID, f.leaveTypeID))
}

func TestRequestService_CreateRequest_DuplicatePending(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	f := newWorkflowFixture(t, ctx, 20)
	svc := newTestRequestService()

	_, err := svc.CreateRequest(ctx, f.createRequest(5))
	require.NoError(t, err)

	_, err = svc.CreateRequest(ctx, f.createRequest(3))
	// The on-leave flag trips first; both guards block a second request.
	assert.True(t, errors.Is(err, leave.ErrAlreadyOnLeave) || errors.Is(err, leave.ErrPendingRequestExists))
}

func TestRequestService_CreateRequest_RequiresManagerAndReliever(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	tenantID := createTestTenant(t, ctx)
	levelID := createTestLevel(t, ctx, tenantID)
	leaveTypeID := createTestLeaveType(t, ctx, tenantID, levelID, "Annual Leave", 20)
	svc := newTestRequestService()

	orphan := createTestEmployee(t, ctx, tenantID, testEmployeeOpts{levelID: &levelID})
	req := leave.CreateLeaveRequestRequest{
		EmployeeID:     orphan.ID,
		TenantID:       tenantID,
		LeaveTypeID:    leaveTypeID,
		StartDate:      "2026-10-01",
		ResumptionDate: "2026-10-06",
		Duration:       3,
		Reason:         "testing",
	}

	_, err := svc.CreateRequest(ctx, req)
	assert.ErrorIs(t, err, leave.ErrLineManagerNotSet)

	manager := createTestEmployee(t, ctx, tenantID, testEmployeeOpts{})
	repo := postgresql.NewEmployeeRepository(testLeaveDB)
	_, err = repo.Update(ctx, employee.UpdateEmployeeParams{
		ID:            orphan.ID,
		TenantID:      tenantID,
		LineManagerID: &manager.ID,
	})
	require.NoError(t, err)

	_, err = svc.CreateRequest(ctx, req)
	assert.ErrorIs(t, err, leave.ErrRelieverNotSet)
}

func TestRequestService_TwoStageApproval(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	f := newWorkflowFixture(t, ctx, 20)
	svc := newTestRequestService()

	created, err := svc.CreateRequest(ctx, f.createRequest(5))
	require.NoError(t, err)

	// Admin review before the manager sign-off is rejected.
	_, err = svc.ReviewByTenantAdmin(ctx, leave.ReviewLeaveRequestRequest{
		RequestID:  created.ID,
		TenantID:   f.tenantID,
		ReviewerID: f.admin.ID,
		Status:     leave.LeaveRequestStatusApproved,
	})
	assert.ErrorIs(t, err, leave.ErrNotReviewedByManager)

	// A random colleague cannot run the manager stage.
	_, err = svc.ReviewByLineManager(ctx, leave.ReviewLeaveRequestRequest{
		RequestID:  created.ID,
		TenantID:   f.tenantID,
		ReviewerID: f.reliever.ID,
		Status:     leave.LeaveRequestStatusApproved,
	})
	assert.ErrorIs(t, err, leave.ErrNotRequestReviewer)

	// Stage 1: manager approves; status stays pending.
	afterStage1, err := svc.ReviewByLineManager(ctx, leave.ReviewLeaveRequestRequest{
		RequestID:  created.ID,
		TenantID:   f.tenantID,
		ReviewerID: f.manager.ID,
		Status:     leave.LeaveRequestStatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusPending, afterStage1.Status)
	assert.Equal(t, leave.StageLineManager, afterStage1.ApprovalCount)
	require.NotNil(t, afterStage1.ApprovedBy)
	assert.Equal(t, f.manager.ID, *afterStage1.ApprovedBy)

	// Repeating stage 1 is rejected.
	_, err = svc.ReviewByLineManager(ctx, leave.ReviewLeaveRequestRequest{
		RequestID:  created.ID,
		TenantID:   f.tenantID,
		ReviewerID: f.manager.ID,
		Status:     leave.LeaveRequestStatusApproved,
	})
	assert.ErrorIs(t, err, leave.ErrAlreadyPassedStageOne)

	// Stage 2: admin approves; snapshots capture the ledger state.
	afterStage2, err := svc.ReviewByTenantAdmin(ctx, leave.ReviewLeaveRequestRequest{
		RequestID:  created.ID,
		TenantID:   f.tenantID,
		ReviewerID: f.admin.ID,
		Status:     leave.LeaveRequestStatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, afterStage2.Status)
	assert.Equal(t, leave.StageTenantAdmin, afterStage2.ApprovalCount)
	assert.Equal(t, 15, afterStage2.RemainingDays)
	assert.Equal(t, 20, afterStage2.BalanceBeforeLeave)
	require.NotNil(t, afterStage2.ApprovedBy)
	assert.Equal(t, f.admin.ID, *afterStage2.ApprovedBy)

	// Terminal: any further review is rejected.
	_, err = svc.ReviewByTenantAdmin(ctx, leave.ReviewLeaveRequestRequest{
		RequestID:  created.ID,
		TenantID:   f.tenantID,
		ReviewerID: f.admin.ID,
		Status:     leave.LeaveRequestStatusRejected,
		Reason:     "changed my mind",
	})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)

	// The approved days stay spent.
	assert.Equal(t, 15, balanceOf(t, ctx, f.requester.ID, f.leaveTypeID))
}

func TestRequestService_AdminCanRunStageOne(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	f := newWorkflowFixture(t, ctx, 20)
	svc := newTestRequestService()

	created, err := svc.CreateRequest(ctx, f.createRequest(2))
	require.NoError(t, err)

	afterStage1, err := svc.ReviewByLineManager(ctx, leave.ReviewLeaveRequestRequest{
		RequestID:  created.ID,
		TenantID:   f.tenantID,
		ReviewerID: f.admin.ID,
		Status:     leave.LeaveRequestStatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StageLineManager, afterStage1.ApprovalCount)
}

func TestRequestService_RejectionRestoresBalance(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	f := newWorkflowFixture(t, ctx, 20)
	svc := newTestRequestService()

	created, err := svc.CreateRequest(ctx, f.createRequest(5))
	require.NoError(t, err)
	require.Equal(t, 15, balanceOf(t, ctx, f.requester.ID, f.leaveTypeID))

	rejected, err := svc.ReviewByLineManager(ctx, leave.ReviewLeaveRequestRequest{
		RequestID:  created.ID,
		TenantID:   f.tenantID,
		ReviewerID: f.manager.ID,
		Status:     leave.LeaveRequestStatusRejected,
		Reason:     "coverage conflict",
	})
	require.NoError(t, err)

	assert.Equal(t, leave.LeaveRequestStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "coverage conflict", *rejected.RejectionReason)
	require.NotNil(t, rejected.RejectedBy)
	assert.Equal(t, f.manager.ID, *rejected.RejectedBy)

	// Reserve/restore round trip: the ledger is back where it started and
	// the requester is no longer flagged on leave.
	assert.Equal(t, 20, balanceOf(t, ctx, f.requester.ID, f.leaveTypeID))
	emp, err := postgresql.NewEmployeeRepository(testLeaveDB).GetByID(ctx, f.requester.ID, f.tenantID)
	require.NoError(t, err)
	assert.False(t, emp.IsOnLeave)
}

func TestRequestService_CancelRestoresBalance(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	f := newWorkflowFixture(t, ctx, 20)
	svc := newTestRequestService()

	created, err := svc.CreateRequest(ctx, f.createRequest(4))
	require.NoError(t, err)

	cancelled, err := svc.CancelRequest(ctx, created.ID, f.tenantID, f.admin.ID)
	require.NoError(t, err)

	assert.Equal(t, leave.LeaveRequestStatusRejected, cancelled.Status)
	assert.Equal(t, 20, balanceOf(t, ctx, f.requester.ID, f.leaveTypeID))
}

func TestRequestService_DeleteDoesNotRestore(t *testing.T) {
	ctx := context.Background()
	leaveTestInit(t)
	f := newWorkflowFixture(t, ctx, 20)
	svc := newTestRequestService()

	created, err := svc.CreateRequest(ctx, f.createRequest(4))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRequest(ctx, created.ID, f.tenantID))

	_, err = svc.GetRequest(ctx, created.ID, f.tenantID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
	// Destructive override: the reserved days stay spent.
	assert.Equal(t, 16, balanceOf(t, ctx, f.requester.ID, f.leaveTypeID))
}
