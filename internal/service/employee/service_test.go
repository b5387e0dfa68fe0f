package employee

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/employee"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
	"github.com/leavedesk/leavedesk-backend-go/internal/repository/postgresql"
	leaveService "github.com/leavedesk/leavedesk-backend-go/internal/service/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testEmployeeDB *database.DB

func employeeTestInit(t *testing.T) {
	t.Helper()
	if testEmployeeDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	var err error
	testEmployeeDB, err = database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")
}

func newTestEmployeeService() *Service {
	balanceSvc := leaveService.NewBalanceService(
		testEmployeeDB,
		postgresql.NewLeaveTypeRepository(testEmployeeDB),
		postgresql.NewLeaveBalanceRepository(testEmployeeDB),
		postgresql.NewEmployeeRepository(testEmployeeDB),
	)
	return NewService(
		testEmployeeDB,
		balanceSvc,
		postgresql.NewEmployeeRepository(testEmployeeDB),
		postgresql.NewLevelRepository(testEmployeeDB),
	)
}

func createEmployeeTestTenant(t *testing.T, ctx context.Context) string {
	t.Helper()
	var tenantID string
	err := testEmployeeDB.QueryRow(ctx, `
		INSERT INTO tenants (name, email, password)
		VALUES ($1, $2, 'hashed')
		RETURNING id
	`, fmt.Sprintf("Acme %d", time.Now().UnixNano()),
		fmt.Sprintf("acme-%d@example.com", time.Now().UnixNano()),
	).Scan(&tenantID)
	require.NoError(t, err)
	return tenantID
}

func createEmployeeTestLevel(t *testing.T, ctx context.Context, tenantID string, defaultBalance int) (levelID, typeID string) {
	t.Helper()
	err := testEmployeeDB.QueryRow(ctx, `
		INSERT INTO levels (tenant_id, name)
		VALUES ($1, $2)
		RETURNING id
	`, tenantID, fmt.Sprintf("Level %d", time.Now().UnixNano())).Scan(&levelID)
	require.NoError(t, err)

	err = testEmployeeDB.QueryRow(ctx, `
		INSERT INTO leave_types (tenant_id, level_id, name, default_balance)
		VALUES ($1, $2, 'Annual Leave', $3)
		RETURNING id
	`, tenantID, levelID, defaultBalance).Scan(&typeID)
	require.NoError(t, err)
	return levelID, typeID
}

func uniqueEmail() string {
	return fmt.Sprintf("emp-%d@example.com", time.Now().UnixNano())
}

func TestEmployeeService_CreateEmployee_HashesPasswordAndSeedsBalances(t *testing.T) {
	ctx := context.Background()
	employeeTestInit(t)
	tenantID := createEmployeeTestTenant(t, ctx)
	levelID, typeID := createEmployeeTestLevel(t, ctx, tenantID, 20)
	svc := newTestEmployeeService()

	gender := "female"
	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		TenantID:  tenantID,
		StaffID:   "ST-001",
		FirstName: "Jane",
		Surname:   "Doe",
		Email:     uniqueEmail(),
		Password:  "supersecret",
		Gender:    &gender,
		LevelID:   &levelID,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Empty(t, created.Password)

	// Stored password is a bcrypt hash of the plaintext.
	var storedHash string
	err = testEmployeeDB.QueryRow(ctx, `SELECT password FROM employees WHERE id = $1`, created.ID).Scan(&storedHash)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("supersecret")))

	// Level assignment at creation seeds the ledger.
	balance, err := postgresql.NewLeaveBalanceRepository(testEmployeeDB).Get(ctx, created.ID, typeID)
	require.NoError(t, err)
	assert.Equal(t, 20, balance.Balance)
}

func TestEmployeeService_CreateEmployee_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	employeeTestInit(t)
	tenantID := createEmployeeTestTenant(t, ctx)
	svc := newTestEmployeeService()

	email := uniqueEmail()
	req := employee.CreateEmployeeRequest{
		TenantID:  tenantID,
		StaffID:   "ST-001",
		FirstName: "Jane",
		Surname:   "Doe",
		Email:     email,
		Password:  "supersecret",
	}
	_, err := svc.CreateEmployee(ctx, req)
	require.NoError(t, err)

	req.StaffID = "ST-002"
	_, err = svc.CreateEmployee(ctx, req)
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestEmployeeService_UpdateEmployee_LevelChangeRegeneratesLedger(t *testing.T) {
	ctx := context.Background()
	employeeTestInit(t)
	tenantID := createEmployeeTestTenant(t, ctx)
	oldLevel, oldType := createEmployeeTestLevel(t, ctx, tenantID, 20)
	newLevel, newType := createEmployeeTestLevel(t, ctx, tenantID, 30)
	svc := newTestEmployeeService()

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		TenantID:  tenantID,
		StaffID:   "ST-001",
		FirstName: "Jane",
		Surname:   "Doe",
		Email:     uniqueEmail(),
		Password:  "supersecret",
		LevelID:   &oldLevel,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
		ID:       created.ID,
		TenantID: tenantID,
		LevelID:  &newLevel,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.LevelID)
	assert.Equal(t, newLevel, *updated.LevelID)

	balanceRepo := postgresql.NewLeaveBalanceRepository(testEmployeeDB)
	_, err = balanceRepo.Get(ctx, created.ID, oldType)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)

	balance, err := balanceRepo.Get(ctx, created.ID, newType)
	require.NoError(t, err)
	assert.Equal(t, 30, balance.Balance)
}

func TestEmployeeService_GetEmployee_NotFound(t *testing.T) {
	ctx := context.Background()
	employeeTestInit(t)
	tenantID := createEmployeeTestTenant(t, ctx)
	svc := newTestEmployeeService()

	_, err := svc.GetEmployee(ctx, "00000000-0000-0000-0000-000000000000", tenantID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
