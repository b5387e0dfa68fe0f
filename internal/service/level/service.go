package level

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

// Service owns level CRUD and the employee-to-level assignment that drives
// ledger regeneration.
type Service struct {
	db       *database.DB
	balances leave.BalanceService

	level.LevelRepository
	leave.LeaveTypeRepository
	leave.LeaveBalanceRepository
	employee.EmployeeRepository
}

func NewService(
	db *database.DB,
	balanceService leave.BalanceService,
	levelRepository level.LevelRepository,
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveBalanceRepository leave.LeaveBalanceRepository,
	employeeRepository employee.EmployeeRepository,
) *Service {
	return &Service{
		db:                     db,
		balances:               balanceService,
		LevelRepository:        levelRepository,
		LeaveTypeRepository:    leaveTypeRepository,
		LeaveBalanceRepository: leaveBalanceRepository,
		EmployeeRepository:     employeeRepository,
	}
}

// AddLevel implements level.LevelService.
func (s *Service) AddLevel(ctx context.Context, tenantID string, req level.CreateLevelRequest) (level.Level, error) {
	if err := req.Validate(); err != nil {
		return level.Level{}, err
	}

	if _, err := s.LevelRepository.GetByName(ctx, req.Name, tenantID); err == nil {
		return level.Level{}, level.ErrLevelExists
	} else if err != level.ErrLevelNotFound {
		return level.Level{}, fmt.Errorf("failed to check level name: %w", err)
	}

	created, err := s.LevelRepository.Create(ctx, level.Level{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return level.Level{}, err
	}

	return created, nil
}

// GetLevel implements level.LevelService. The level's leave types are
// attached so clients see the full policy in one read.
func (s *Service) GetLevel(ctx context.Context, id, tenantID string) (level.Level, error) {
	lvl, err := s.LevelRepository.GetByID(ctx, id, tenantID)
	if err != nil {
		return level.Level{}, err
	}

	leaveTypes, err := s.LeaveTypeRepository.GetByLevelID(ctx, lvl.ID, tenantID)
	if err != nil {
		return level.Level{}, fmt.Errorf("failed to get leave types: %w", err)
	}
	lvl.LeaveTypes = leaveTypes

	return lvl, nil
}

// ListLevels implements level.LevelService.
func (s *Service) ListLevels(ctx context.Context, tenantID string, filter level.ListFilter) ([]level.Level, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	levels, total, err := s.LevelRepository.List(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	for i := range levels {
		leaveTypes, err := s.LeaveTypeRepository.GetByLevelID(ctx, levels[i].ID, tenantID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get leave types: %w", err)
		}
		levels[i].LeaveTypes = leaveTypes
	}

	return levels, total, nil
}

// UpdateLevel implements level.LevelService.
func (s *Service) UpdateLevel(ctx context.Context, tenantID string, req level.UpdateLevelRequest) (level.Level, error) {
	if err := req.Validate(); err != nil {
		return level.Level{}, err
	}

	if req.Name != nil {
		existing, err := s.LevelRepository.GetByName(ctx, *req.Name, tenantID)
		if err == nil && existing.ID != req.ID {
			return level.Level{}, level.ErrLevelExists
		}
		if err != nil && err != level.ErrLevelNotFound {
			return level.Level{}, fmt.Errorf("failed to check level name: %w", err)
		}
	}

	return s.LevelRepository.Update(ctx, req, tenantID)
}

// DeleteLevel implements level.LevelService. The level's leave types cascade
// away; employees on the level are left without one and keep no ledger rows.
func (s *Service) DeleteLevel(ctx context.Context, id, tenantID string) error {
	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context, tx pgx.Tx) error {
		leaveTypes, err := s.LeaveTypeRepository.GetByLevelID(txCtx, id, tenantID)
		if err != nil {
			return fmt.Errorf("failed to get leave types: %w", err)
		}
		for _, lt := range leaveTypes {
			if err := s.LeaveBalanceRepository.DeleteByLeaveType(txCtx, lt.ID); err != nil {
				return fmt.Errorf("failed to delete ledger rows: %w", err)
			}
		}
		return s.LevelRepository.Delete(txCtx, id, tenantID)
	})
}

// AssignLevel implements level.LevelService. Moving an employee between
// levels rebuilds their ledger from the new level's type defaults; nothing
// carries over from the old level.
func (s *Service) AssignLevel(ctx context.Context, req level.AssignLevelRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, req.TenantID); err != nil {
		return err
	}

	lvl, err := s.LevelRepository.GetByID(ctx, req.LevelID, req.TenantID)
	if err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context, tx pgx.Tx) error {
		if _, err := s.EmployeeRepository.Update(txCtx, employee.UpdateEmployeeParams{
			ID:       req.EmployeeID,
			TenantID: req.TenantID,
			LevelID:  &req.LevelID,
		}); err != nil {
			return fmt.Errorf("failed to move employee to level: %w", err)
		}

		return s.balances.RegenerateForLevel(txCtx, req.EmployeeID, lvl.ID, req.TenantID)
	})
}
