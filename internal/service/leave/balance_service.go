package leave

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/employee"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
	"github.com/leavedesk/leavedesk-backend-go/internal/repository/postgresql"
)

// BalanceService reads and regenerates the per-employee leave ledger.
type BalanceService struct {
	db *database.DB

	leave.LeaveTypeRepository
	leave.LeaveBalanceRepository
	employee.EmployeeRepository
}

func NewBalanceService(
	db *database.DB,
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveBalanceRepository leave.LeaveBalanceRepository,
	employeeRepository employee.EmployeeRepository,
) *BalanceService {
	return &BalanceService{
		db:                     db,
		LeaveTypeRepository:    leaveTypeRepository,
		LeaveBalanceRepository: leaveBalanceRepository,
		EmployeeRepository:     employeeRepository,
	}
}

// GetBalances implements leave.BalanceService. Ledger rows whose leave type
// cannot apply to the employee's gender are filtered out of the view; the
// rows themselves stay untouched.
func (s *BalanceService) GetBalances(ctx context.Context, employeeID, tenantID string) ([]leave.LeaveBalance, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	balances, err := s.LeaveBalanceRepository.GetByEmployee(ctx, employeeID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave balances: %w", err)
	}

	return leave.FilterBalancesByGender(balances, emp.GenderOrEmpty()), nil
}

// RegenerateForLevel implements leave.BalanceService. The employee's entire
// ledger is replaced: rows for the old level's types disappear, rows for the
// new level's types start at their defaults. Partially spent balances are
// not carried over.
func (s *BalanceService) RegenerateForLevel(ctx context.Context, employeeID, levelID, tenantID string) error {
	leaveTypes, err := s.LeaveTypeRepository.GetByLevelID(ctx, levelID, tenantID)
	if err != nil {
		return fmt.Errorf("failed to get leave types for level: %w", err)
	}

	balances := make([]leave.LeaveBalance, 0, len(leaveTypes))
	for _, lt := range leaveTypes {
		balances = append(balances, leave.LeaveBalance{
			TenantID:    tenantID,
			EmployeeID:  employeeID,
			LeaveTypeID: lt.ID,
			Balance:     lt.DefaultBalance,
		})
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context, tx pgx.Tx) error {
		if err := s.LeaveBalanceRepository.DeleteByEmployee(txCtx, employeeID); err != nil {
			return fmt.Errorf("failed to clear old ledger rows: %w", err)
		}
		if err := s.LeaveBalanceRepository.InsertMany(txCtx, balances); err != nil {
			return fmt.Errorf("failed to insert new ledger rows: %w", err)
		}
		return nil
	})
}

// RebalanceForTypeDefaultChange implements leave.BalanceService. Every
// ledger row of the type is set to the new default outright; employees with
// spent or pending days get the full new balance like everyone else.
func (s *BalanceService) RebalanceForTypeDefaultChange(ctx context.Context, leaveTypeID string, newDefault int) error {
	if err := s.LeaveBalanceRepository.SetBalanceForType(ctx, leaveTypeID, newDefault); err != nil {
		return fmt.Errorf("failed to rebalance ledger rows: %w", err)
	}
	return nil
}
