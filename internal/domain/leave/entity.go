package leave

import (
	"strings"
	"time"
)

// LeaveType is a named category of leave scoped to a tenant and bound to a
// single level at creation time. Its default balance seeds every ledger row
// created for employees on that level.
type LeaveType struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenant_id"`
	LevelID        string    `json:"level_id"`
	Name           string    `json:"name"`
	DefaultBalance int       `json:"default_balance"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Joined for responses
	LevelName *string `json:"level_name,omitempty"`
}

// LeaveBalance is one ledger row: the remaining leave days of one employee
// for one leave type. Rows exist only for employees with an assigned level
// and are regenerated wholesale when that level changes.
type LeaveBalance struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	EmployeeID  string    `json:"employee_id"`
	LeaveTypeID string    `json:"leave_type_id"`
	Balance     int       `json:"balance"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined for responses
	LeaveTypeName  *string `json:"leave_type_name,omitempty"`
	DefaultBalance *int    `json:"default_balance,omitempty"`
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// Approval stages a request passes through. Stage progress is tracked by
// ApprovalCount; the status stays pending until the second sign-off.
const (
	StageLineManager = 1
	StageTenantAdmin = 2
)

// LeaveRequest is one row of leave history. Line manager and reliever are
// captured both as references and as name/email snapshots so later org-chart
// changes do not rewrite the audit trail.
type LeaveRequest struct {
	ID         string `json:"id"`
	TenantID   string `json:"tenant_id"`
	EmployeeID string `json:"employee_id"`
	// LineManagerID is set at creation and nulled if the manager record is
	// later removed; the name/email snapshots keep the audit trail intact.
	LineManagerID *string `json:"line_manager_id,omitempty"`
	RelieverID    *string `json:"reliever_id,omitempty"`
	LeaveTypeID   string  `json:"leave_type_id"`

	StartDate      time.Time `json:"start_date"`
	ResumptionDate time.Time `json:"resumption_date"`
	Duration       int       `json:"duration"`
	Reason         string    `json:"reason"`

	Status          LeaveRequestStatus `json:"status"`
	RejectionReason *string            `json:"rejection_reason,omitempty"`
	ApprovalReason  *string            `json:"approval_reason,omitempty"`
	ApprovedBy      *string            `json:"approved_by,omitempty"`
	RejectedBy      *string            `json:"rejected_by,omitempty"`
	ApprovalCount   int                `json:"approval_count"`

	BalanceBeforeLeave int     `json:"balance_before_leave"`
	RemainingDays      int     `json:"remaining_days"`
	DocumentURL        *string `json:"document_url,omitempty"`

	LineManagerName  *string `json:"line_manager_name,omitempty"`
	LineManagerEmail *string `json:"line_manager_email,omitempty"`
	RelieverName     *string `json:"reliever_name,omitempty"`
	RelieverEmail    *string `json:"reliever_email,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined for responses
	EmployeeName  *string `json:"employee_name,omitempty"`
	EmployeeEmail *string `json:"employee_email,omitempty"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
}

// IsTerminal reports whether the request can no longer transition.
func (r *LeaveRequest) IsTerminal() bool {
	return r.Status == LeaveRequestStatusApproved || r.Status == LeaveRequestStatusRejected
}

// PassedLineManagerStage reports whether the first sign-off has happened.
func (r *LeaveRequest) PassedLineManagerStage() bool {
	return r.ApprovalCount >= StageLineManager
}

// FilterBalancesByGender drops leave types that cannot apply to the
// employee's recorded gender: "maternity" types for men, "paternity" types
// for women. Matching is a case-insensitive substring check on the type name;
// rows without a joined type name pass through untouched.
func FilterBalancesByGender(balances []LeaveBalance, gender string) []LeaveBalance {
	var excluded string
	switch strings.ToLower(gender) {
	case "male":
		excluded = "maternity"
	case "female":
		excluded = "paternity"
	default:
		return balances
	}

	filtered := make([]LeaveBalance, 0, len(balances))
	for _, b := range balances {
		if b.LeaveTypeName != nil && strings.Contains(strings.ToLower(*b.LeaveTypeName), excluded) {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}
