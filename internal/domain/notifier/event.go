package notifier

import "time"

// EventKind identifies a lifecycle moment in a leave request. Each kind
// maps to a recipient set and an email template.
type EventKind string

const (
	EventRequestCreated        EventKind = "request_created"
	EventRequestRejectedStage1 EventKind = "request_rejected_stage1"
	EventRequestApprovedStage1 EventKind = "request_approved_stage1"
	EventRequestRejectedStage2 EventKind = "request_rejected_stage2"
	EventRequestApprovedStage2 EventKind = "request_approved_stage2"
)

// Event carries everything a delivery channel needs so handlers never have
// to hit the database again. Branding fields come from the tenant record.
type Event struct {
	Kind      EventKind
	TenantID  string
	RequestID string

	EmployeeName  string
	EmployeeEmail string

	LineManagerName  string
	LineManagerEmail string

	RelieverName  string
	RelieverEmail string

	TenantName  string
	TenantLogo  string
	TenantColor string

	LeaveTypeName  string
	StartDate      time.Time
	ResumptionDate time.Time
	Duration       int

	// Reason is the employee's request reason for created events and the
	// reviewer's note for rejections.
	Reason string

	// ReviewURL deep-links the recipient to the request in the frontend.
	ReviewURL string
}
