package postgresql

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/employee"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRepoDB *database.DB

func repoTestInit(t *testing.T) {
	t.Helper()
	if testRepoDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	var err error
	testRepoDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")
}

type repoFixture struct {
	tenantID    string
	levelID     string
	leaveTypeID string
	employeeID  string
}

func newRepoFixture(t *testing.T, ctx context.Context, balance int) repoFixture {
	t.Helper()
	var f repoFixture

	err := testRepoDB.QueryRow(ctx, `
		INSERT INTO tenants (name, email, password)
		VALUES ($1, $2, 'hashed')
		RETURNING id
	`, fmt.Sprintf("Acme %d", time.Now().UnixNano()),
		fmt.Sprintf("acme-%d@example.com", time.Now().UnixNano()),
	).Scan(&f.tenantID)
	require.NoError(t, err)

	err = testRepoDB.QueryRow(ctx, `
		INSERT INTO levels (tenant_id, name) VALUES ($1, $2) RETURNING id
	`, f.tenantID, fmt.Sprintf("Level %d", time.Now().UnixNano())).Scan(&f.levelID)
	require.NoError(t, err)

	err = testRepoDB.QueryRow(ctx, `
		INSERT INTO leave_types (tenant_id, level_id, name, default_balance)
		VALUES ($1, $2, 'Annual Leave', $3)
		RETURNING id
	`, f.tenantID, f.levelID, balance).Scan(&f.leaveTypeID)
	require.NoError(t, err)

	emp, err := NewEmployeeRepository(testRepoDB).Create(ctx, employee.Employee{
		TenantID:  f.tenantID,
		StaffID:   fmt.Sprintf("S-%d", time.Now().UnixNano()),
		FirstName: "Repo",
		Surname:   "Tester",
		Email:     fmt.Sprintf("repo-%d@example.com", time.Now().UnixNano()),
		Password:  "hashed",
		IsActive:  true,
		LevelID:   &f.levelID,
	})
	require.NoError(t, err)
	f.employeeID = emp.ID

	_, err = NewLeaveBalanceRepository(testRepoDB).Insert(ctx, leave.LeaveBalance{
		TenantID:    f.tenantID,
		EmployeeID:  f.employeeID,
		LeaveTypeID: f.leaveTypeID,
		Balance:     balance,
	})
	require.NoError(t, err)

	return f
}

func TestLeaveBalanceRepository_Reserve(t *testing.T) {
	ctx := context.Background()
	repoTestInit(t)
	f := newRepoFixture(t, ctx, 10)
	repo := NewLeaveBalanceRepository(testRepoDB)

	require.NoError(t, repo.Reserve(ctx, f.employeeID, f.leaveTypeID, 4))

	b, err := repo.Get(ctx, f.employeeID, f.leaveTypeID)
	require.NoError(t, err)
	assert.Equal(t, 6, b.Balance)

	// Over-reserving fails and leaves the row untouched.
	err = repo.Reserve(ctx, f.employeeID, f.leaveTypeID, 7)
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	b, err = repo.Get(ctx, f.employeeID, f.leaveTypeID)
	require.NoError(t, err)
	assert.Equal(t, 6, b.Balance)

	// Reserving down to exactly zero is allowed.
	require.NoError(t, repo.Reserve(ctx, f.employeeID, f.leaveTypeID, 6))
	b, err = repo.Get(ctx, f.employeeID, f.leaveTypeID)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Balance)
}

func TestLeaveBalanceRepository_Reserve_MissingRow(t *testing.T) {
	ctx := context.Background()
	repoTestInit(t)
	f := newRepoFixture(t, ctx, 10)
	repo := NewLeaveBalanceRepository(testRepoDB)

	// A missing ledger row is distinguishable from an underfunded one.
	err := repo.Reserve(ctx, f.employeeID, "00000000-0000-0000-0000-000000000000", 1)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}

func TestLeaveBalanceRepository_Restore(t *testing.T) {
	ctx := context.Background()
	repoTestInit(t)
	f := newRepoFixture(t, ctx, 10)
	repo := NewLeaveBalanceRepository(testRepoDB)

	require.NoError(t, repo.Reserve(ctx, f.employeeID, f.leaveTypeID, 4))
	require.NoError(t, repo.Restore(ctx, f.employeeID, f.leaveTypeID, 4))

	b, err := repo.Get(ctx, f.employeeID, f.leaveTypeID)
	require.NoError(t, err)
	assert.Equal(t, 10, b.Balance)

	err = repo.Restore(ctx, f.employeeID, "00000000-0000-0000-0000-000000000000", 4)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}

func TestLeaveBalanceRepository_Insert_ConcurrentConflictReturnsWinner(t *testing.T) {
	ctx := context.Background()
	repoTestInit(t)
	f := newRepoFixture(t, ctx, 10)
	repo := NewLeaveBalanceRepository(testRepoDB)

	// A second insert for the same (employee, type) pair does not error and
	// does not overwrite; it returns the existing row.
	b, err := repo.Insert(ctx, leave.LeaveBalance{
		TenantID:    f.tenantID,
		EmployeeID:  f.employeeID,
		LeaveTypeID: f.leaveTypeID,
		Balance:     99,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, b.Balance)
}

func TestEmployeeRepository_ClearOnLeaveForResumed(t *testing.T) {
	ctx := context.Background()
	repoTestInit(t)
	f := newRepoFixture(t, ctx, 10)
	empRepo := NewEmployeeRepository(testRepoDB)

	require.NoError(t, empRepo.SetOnLeave(ctx, f.employeeID, true))

	// Approved leave that ended yesterday.
	_, err := testRepoDB.Exec(ctx, `
		INSERT INTO leave_history (
			tenant_id, employee_id, leave_type_id, start_date, resumption_date,
			duration, reason, status, approval_count
		) VALUES ($1, $2, $3, NOW() - INTERVAL '10 days', NOW() - INTERVAL '1 day',
			7, 'past leave', 'approved', 2)
	`, f.tenantID, f.employeeID, f.leaveTypeID)
	require.NoError(t, err)

	cleared, err := empRepo.ClearOnLeaveForResumed(ctx, time.Now())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cleared, int64(1))

	emp, err := empRepo.GetByID(ctx, f.employeeID, f.tenantID)
	require.NoError(t, err)
	assert.False(t, emp.IsOnLeave)
}
