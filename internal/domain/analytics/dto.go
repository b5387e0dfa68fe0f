package analytics

// MonthlyLeaveCount is one month's bucket in the yearly breakdown. Month is
// 1-based; months with no requests are emitted with zero counts. Total counts
// every request regardless of status.
type MonthlyLeaveCount struct {
	Month    int `json:"month"`
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Pending  int `json:"pending"`
}

// LeaveOverview summarizes a tenant's leave activity for dashboards.
type LeaveOverview struct {
	TotalEmployees   int64 `json:"total_employees"`
	EmployeesOnLeave int64 `json:"employees_on_leave"`
	PendingRequests  int64 `json:"pending_requests"`
	ApprovedRequests int64 `json:"approved_requests"`
	RejectedRequests int64 `json:"rejected_requests"`
}

// TypeUsage reports how often each leave type was requested and approved.
type TypeUsage struct {
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name"`
	Requested     int64  `json:"requested"`
	Approved      int64  `json:"approved"`
}
