package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id, tenantID string) (LeaveType, error)
	GetByLevelID(ctx context.Context, levelID, tenantID string) ([]LeaveType, error)
	List(ctx context.Context, tenantID string, filter ListLeaveTypeFilter) ([]LeaveType, int64, error)
	ExistsInLevel(ctx context.Context, levelID, name string) (bool, error)
	Update(ctx context.Context, req UpdateLeaveTypeRequest, tenantID string) (LeaveType, error)
	Delete(ctx context.Context, id, tenantID string) error
}

// LeaveBalanceRepository - interface for employee_leave_balances table.
// Reserve and Restore are the only mutation paths the workflow uses; both
// re-validate at commit so concurrent requests against the same row
// serialize on the database.
type LeaveBalanceRepository interface {
	Get(ctx context.Context, employeeID, leaveTypeID string) (LeaveBalance, error)
	GetByEmployee(ctx context.Context, employeeID, tenantID string) ([]LeaveBalance, error)
	Insert(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	InsertMany(ctx context.Context, balances []LeaveBalance) error
	Reserve(ctx context.Context, employeeID, leaveTypeID string, amount int) error
	Restore(ctx context.Context, employeeID, leaveTypeID string, amount int) error
	DeleteByEmployee(ctx context.Context, employeeID string) error
	DeleteByLeaveType(ctx context.Context, leaveTypeID string) error
	SetBalanceForType(ctx context.Context, leaveTypeID string, balance int) error
}

// LeaveRequestRepository - interface for leave_history table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id, tenantID string) (LeaveRequest, error)
	// GetByIDForUpdate locks the row for the duration of the surrounding
	// transaction so two concurrent reviewers cannot both observe pending.
	GetByIDForUpdate(ctx context.Context, id, tenantID string) (LeaveRequest, error)
	List(ctx context.Context, tenantID string, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	ListForReport(ctx context.Context, tenantID string, startDate, endDate time.Time) ([]LeaveRequest, error)
	HasPending(ctx context.Context, employeeID string) (bool, error)
	Update(ctx context.Context, req UpdateLeaveRequestParams) error
	Delete(ctx context.Context, id, tenantID string) error
}
