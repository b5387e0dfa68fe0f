package leave

import (
	"time"

	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	Name           string `json:"name"`
	DefaultBalance int    `json:"default_balance"`
	LevelID        string `json:"level_id"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}
	if r.DefaultBalance < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_balance",
			Message: "default_balance must not be negative",
		})
	}
	if validator.IsEmpty(r.LevelID) {
		errs = append(errs, validator.ValidationError{
			Field:   "level_id",
			Message: "level_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeaveTypeRequest struct {
	ID             string  `json:"id"`
	Name           *string `json:"name,omitempty"`
	DefaultBalance *int    `json:"default_balance,omitempty"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.DefaultBalance != nil && *r.DefaultBalance < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_balance",
			Message: "default_balance must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListLeaveTypeFilter struct {
	Search *string
	Page   int
	Limit  int
}

type CreateLeaveRequestRequest struct {
	EmployeeID     string  `json:"-"`
	TenantID       string  `json:"-"`
	LeaveTypeID    string  `json:"leave_type_id"`
	StartDate      string  `json:"start_date"`
	ResumptionDate string  `json:"resumption_date"`
	Duration       int     `json:"duration"`
	Reason         string  `json:"reason"`
	DocumentURL    *string `json:"document_url,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	startDate, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}

	resumptionDate, resumptionOK := validator.IsValidDate(r.ResumptionDate)
	if !resumptionOK {
		errs = append(errs, validator.ValidationError{
			Field:   "resumption_date",
			Message: "resumption_date must be a valid date (YYYY-MM-DD)",
		})
	}

	if startOK && resumptionOK && !resumptionDate.After(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "resumption_date",
			Message: "resumption_date must be after start_date",
		})
	}

	if r.Duration <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "duration",
			Message: "duration must be a positive number of days",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Dates returns the parsed start and resumption dates. Validate must have
// succeeded first.
func (r *CreateLeaveRequestRequest) Dates() (start, resumption time.Time) {
	start, _ = time.Parse("2006-01-02", r.StartDate)
	resumption, _ = time.Parse("2006-01-02", r.ResumptionDate)
	return start, resumption
}

// ReviewLeaveRequestRequest carries a stage-1 or stage-2 approval/rejection.
type ReviewLeaveRequestRequest struct {
	RequestID  string             `json:"-"`
	TenantID   string             `json:"-"`
	ReviewerID string             `json:"-"`
	Status     LeaveRequestStatus `json:"status"`
	Reason     string             `json:"reason"`
}

func (r *ReviewLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "leave request id is required",
		})
	}
	if r.Status != LeaveRequestStatusApproved && r.Status != LeaveRequestStatusRejected {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be either 'approved' or 'rejected'",
		})
	}
	if r.Status == LeaveRequestStatusRejected && validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "a reason is required when rejecting",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestFilter struct {
	EmployeeID    *string
	LineManagerID *string
	Status        *string
	Search        *string
	Page          int
	Limit         int
}

// UpdateLeaveRequestParams is the partial-update shape the repository
// applies; only non-nil fields are written.
type UpdateLeaveRequestParams struct {
	ID                 string
	Status             *LeaveRequestStatus
	RejectionReason    *string
	ApprovalReason     *string
	ApprovedBy         *string
	RejectedBy         *string
	ApprovalCount      *int
	BalanceBeforeLeave *int
	RemainingDays      *int
}
