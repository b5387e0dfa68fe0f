package leave

import (
	"context"
	"time"
)

// BalanceService is the authoritative ledger of remaining leave days per
// employee per leave type.
type BalanceService interface {
	// GetBalances returns the employee's ledger rows with the gender-based
	// leave-type filter already applied.
	GetBalances(ctx context.Context, employeeID, tenantID string) ([]LeaveBalance, error)
	// RegenerateForLevel replaces all of the employee's ledger rows with
	// fresh rows for the given level's leave types.
	RegenerateForLevel(ctx context.Context, employeeID, levelID, tenantID string) error
	// RebalanceForTypeDefaultChange bulk-sets every ledger row of the type
	// to the new default, discarding in-flight consumption.
	RebalanceForTypeDefaultChange(ctx context.Context, leaveTypeID string, newDefault int) error
}

// RequestService drives the two-stage leave approval workflow.
type RequestService interface {
	CreateRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequest, error)
	// ReviewByLineManager handles the first approval stage. The reviewer
	// must be the request's recorded line manager or a tenant admin.
	ReviewByLineManager(ctx context.Context, req ReviewLeaveRequestRequest) (LeaveRequest, error)
	// ReviewByTenantAdmin handles the second stage; it requires the first
	// stage to have signed off.
	ReviewByTenantAdmin(ctx context.Context, req ReviewLeaveRequestRequest) (LeaveRequest, error)
	GetRequest(ctx context.Context, id, tenantID string) (LeaveRequest, error)
	ListRequests(ctx context.Context, tenantID string, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	// DeleteRequest is a destructive admin override; it does not restore
	// the reserved balance.
	DeleteRequest(ctx context.Context, id, tenantID string) error
	// CancelRequest is the explicit cancel-and-restore admin operation.
	CancelRequest(ctx context.Context, id, tenantID, cancelledBy string) (LeaveRequest, error)
}

// TypeService manages leave types and the ledger fan-out their lifecycle
// triggers.
type TypeService interface {
	AddLeaveType(ctx context.Context, tenantID string, req CreateLeaveTypeRequest) (LeaveType, error)
	UpdateLeaveType(ctx context.Context, tenantID string, req UpdateLeaveTypeRequest) (LeaveType, error)
	DeleteLeaveType(ctx context.Context, id, tenantID string) error
	ListLeaveTypes(ctx context.Context, tenantID string, filter ListLeaveTypeFilter) ([]LeaveType, int64, error)
}

// ReportService exports leave history for external consumption.
type ReportService interface {
	// MonthlyReportXLSX renders approved and rejected requests in the date
	// range as a spreadsheet.
	MonthlyReportXLSX(ctx context.Context, tenantID string, startDate, endDate time.Time) ([]byte, error)
}
