package leave

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/employee"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/level"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
	"github.com/leavedesk/leavedesk-backend-go/internal/repository/postgresql"
)

// TypeService manages leave types. Creating or deleting a type fans out to
// the ledger rows of every employee on the type's level.
type TypeService struct {
	db       *database.DB
	balances leave.BalanceService

	leave.LeaveTypeRepository
	leave.LeaveBalanceRepository
	employee.EmployeeRepository
	level.LevelRepository
}

func NewTypeService(
	db *database.DB,
	balanceService leave.BalanceService,
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveBalanceRepository leave.LeaveBalanceRepository,
	employeeRepository employee.EmployeeRepository,
	levelRepository level.LevelRepository,
) *TypeService {
	return &TypeService{
		db:                     db,
		balances:               balanceService,
		LeaveTypeRepository:    leaveTypeRepository,
		LeaveBalanceRepository: leaveBalanceRepository,
		EmployeeRepository:     employeeRepository,
		LevelRepository:        levelRepository,
	}
}

// AddLeaveType implements leave.TypeService. Every employee already on the
// level receives a ledger row at the type's default balance in the same
// transaction.
func (s *TypeService) AddLeaveType(ctx context.Context, tenantID string, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	if _, err := s.LevelRepository.GetByID(ctx, req.LevelID, tenantID); err != nil {
		return leave.LeaveType{}, err
	}

	exists, err := s.LeaveTypeRepository.ExistsInLevel(ctx, req.LevelID, req.Name)
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("failed to check leave type name: %w", err)
	}
	if exists {
		return leave.LeaveType{}, leave.ErrLeaveTypeExists
	}

	created := leave.LeaveType{
		TenantID:       tenantID,
		LevelID:        req.LevelID,
		Name:           req.Name,
		DefaultBalance: req.DefaultBalance,
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context, tx pgx.Tx) error {
		created, err = s.LeaveTypeRepository.Create(txCtx, created)
		if err != nil {
			return err
		}

		employees, err := s.EmployeeRepository.GetByLevelID(txCtx, req.LevelID, tenantID)
		if err != nil {
			return fmt.Errorf("failed to get employees on level: %w", err)
		}

		balances := make([]leave.LeaveBalance, 0, len(employees))
		for _, emp := range employees {
			balances = append(balances, leave.LeaveBalance{
				TenantID:    tenantID,
				EmployeeID:  emp.ID,
				LeaveTypeID: created.ID,
				Balance:     created.DefaultBalance,
			})
		}
		if err := s.LeaveBalanceRepository.InsertMany(txCtx, balances); err != nil {
			return fmt.Errorf("failed to seed ledger rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveType{}, err
	}

	return created, nil
}

// UpdateLeaveType implements leave.TypeService. A default-balance edit
// overwrites every existing ledger row of the type with the new value.
func (s *TypeService) UpdateLeaveType(ctx context.Context, tenantID string, req leave.UpdateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	var updated leave.LeaveType
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context, tx pgx.Tx) error {
		var err error
		updated, err = s.LeaveTypeRepository.Update(txCtx, req, tenantID)
		if err != nil {
			return err
		}

		if req.DefaultBalance != nil {
			return s.balances.RebalanceForTypeDefaultChange(txCtx, updated.ID, *req.DefaultBalance)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveType{}, err
	}

	return updated, nil
}

// DeleteLeaveType implements leave.TypeService. Ledger rows of the type go
// with it; history rows keep their leave_type_id for the audit trail.
func (s *TypeService) DeleteLeaveType(ctx context.Context, id, tenantID string) error {
	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context, tx pgx.Tx) error {
		if err := s.LeaveBalanceRepository.DeleteByLeaveType(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete ledger rows: %w", err)
		}
		return s.LeaveTypeRepository.Delete(txCtx, id, tenantID)
	})
}

// ListLeaveTypes implements leave.TypeService.
func (s *TypeService) ListLeaveTypes(ctx context.Context, tenantID string, filter leave.ListLeaveTypeFilter) ([]leave.LeaveType, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.LeaveTypeRepository.List(ctx, tenantID, filter)
}
