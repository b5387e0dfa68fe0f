package employee

import "context"

// EmployeeService manages employee records. Level assignment is routed
// through the level policy so the leave ledger is regenerated whenever
// level_id changes.
type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	GetEmployee(ctx context.Context, id, tenantID string) (Employee, error)
	ListEmployees(ctx context.Context, tenantID string, filter ListFilter) ([]Employee, int64, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)
	DeleteEmployee(ctx context.Context, id, tenantID string) error
}
