package employee

import (
	"context"
	"time"
)

// EmployeeRepository - interface for employees table
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id, tenantID string) (Employee, error)
	// GetWithRelations loads the employee together with line manager and
	// reliever summaries for workflow precondition checks.
	GetWithRelations(ctx context.Context, id, tenantID string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	GetByLevelID(ctx context.Context, levelID, tenantID string) ([]Employee, error)
	List(ctx context.Context, tenantID string, filter ListFilter) ([]Employee, int64, error)
	Update(ctx context.Context, req UpdateEmployeeParams) (Employee, error)
	SetOnLeave(ctx context.Context, id string, onLeave bool) error
	// ClearOnLeaveForResumed flips is_on_leave off for employees whose
	// approved leave has passed its resumption date. Used by the stale
	// sweeper job; returns the number of employees cleared.
	ClearOnLeaveForResumed(ctx context.Context, asOf time.Time) (int64, error)
	Delete(ctx context.Context, id, tenantID string) error
}
