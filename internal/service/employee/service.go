package employee

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/employee"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/level"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
	"github.com/leavedesk/leavedesk-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

// Service manages employee records. A level change on create or update
// seeds or rebuilds the employee's leave ledger.
type Service struct {
	db       *database.DB
	balances leave.BalanceService

	employee.EmployeeRepository
	level.LevelRepository
}

func NewService(
	db *database.DB,
	balanceService leave.BalanceService,
	employeeRepository employee.EmployeeRepository,
	levelRepository level.LevelRepository,
) *Service {
	return &Service{
		db:                 db,
		balances:           balanceService,
		EmployeeRepository: employeeRepository,
		LevelRepository:    levelRepository,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *Service) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	if _, err := s.EmployeeRepository.GetByEmail(ctx, req.Email); err == nil {
		return employee.Employee{}, employee.ErrEmailExists
	} else if err != employee.ErrEmployeeNotFound {
		return employee.Employee{}, fmt.Errorf("failed to check email: %w", err)
	}

	if req.LevelID != nil {
		if _, err := s.LevelRepository.GetByID(ctx, *req.LevelID, req.TenantID); err != nil {
			return employee.Employee{}, employee.ErrLevelNotFound
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var gender *string
	if req.Gender != nil {
		g := strings.ToLower(*req.Gender)
		gender = &g
	}

	emp := employee.Employee{
		TenantID:      req.TenantID,
		StaffID:       req.StaffID,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		Surname:       req.Surname,
		Email:         strings.ToLower(req.Email),
		Password:      string(hashed),
		JobRole:       req.JobRole,
		Branch:        req.Branch,
		Gender:        gender,
		IsAdmin:       req.IsAdmin,
		IsActive:      true,
		LineManagerID: req.LineManagerID,
		RelieverID:    req.RelieverID,
		LevelID:       req.LevelID,
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context, tx pgx.Tx) error {
		emp, err = s.EmployeeRepository.Create(txCtx, emp)
		if err != nil {
			return err
		}

		if emp.LevelID != nil {
			return s.balances.RegenerateForLevel(txCtx, emp.ID, *emp.LevelID, emp.TenantID)
		}
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}

	return emp, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *Service) GetEmployee(ctx context.Context, id, tenantID string) (employee.Employee, error) {
	return s.EmployeeRepository.GetWithRelations(ctx, id, tenantID)
}

// ListEmployees implements employee.EmployeeService.
func (s *Service) ListEmployees(ctx context.Context, tenantID string, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.EmployeeRepository.List(ctx, tenantID, filter)
}

// UpdateEmployee implements employee.EmployeeService. A level_id change
// rebuilds the employee's ledger from the new level's defaults inside the
// same transaction as the record update.
func (s *Service) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	current, err := s.EmployeeRepository.GetByID(ctx, req.ID, req.TenantID)
	if err != nil {
		return employee.Employee{}, err
	}

	levelChanged := req.LevelID != nil &&
		(current.LevelID == nil || *current.LevelID != *req.LevelID)
	if levelChanged {
		if _, err := s.LevelRepository.GetByID(ctx, *req.LevelID, req.TenantID); err != nil {
			return employee.Employee{}, employee.ErrLevelNotFound
		}
	}

	params := employee.UpdateEmployeeParams{
		ID:            req.ID,
		TenantID:      req.TenantID,
		StaffID:       req.StaffID,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		Surname:       req.Surname,
		JobRole:       req.JobRole,
		Branch:        req.Branch,
		Gender:        req.Gender,
		Avatar:        req.Avatar,
		IsAdmin:       req.IsAdmin,
		LineManagerID: req.LineManagerID,
		RelieverID:    req.RelieverID,
		LevelID:       req.LevelID,
	}

	var updated employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context, tx pgx.Tx) error {
		updated, err = s.EmployeeRepository.Update(txCtx, params)
		if err != nil {
			return err
		}

		if levelChanged {
			return s.balances.RegenerateForLevel(txCtx, req.ID, *req.LevelID, req.TenantID)
		}
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}

	return updated, nil
}

// DeleteEmployee implements employee.EmployeeService. Ledger rows and
// history cascade away with the record.
func (s *Service) DeleteEmployee(ctx context.Context, id, tenantID string) error {
	return s.EmployeeRepository.Delete(ctx, id, tenantID)
}
