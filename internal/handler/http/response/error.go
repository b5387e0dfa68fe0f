package response

import (
	"errors"
	"net/http"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/auth"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/employee"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/level"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/tenant"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")

	// Tenant domain errors
	case errors.Is(err, tenant.ErrTenantNotFound):
		NotFound(w, "Tenant not found")
	case errors.Is(err, tenant.ErrNameExists):
		Conflict(w, "Tenant name already taken")
	case errors.Is(err, tenant.ErrEmailExists):
		Conflict(w, "Tenant email already registered")

	// Level domain errors
	case errors.Is(err, level.ErrLevelNotFound):
		NotFound(w, "Level not found")
	case errors.Is(err, level.ErrLevelExists):
		Conflict(w, "Level name already exists")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrLevelNotFound):
		NotFound(w, "Level not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeExists):
		Conflict(w, "Leave type already exists on this level")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrLineManagerNotSet):
		BadRequest(w, "A line manager must be assigned before requesting leave", nil)
	case errors.Is(err, leave.ErrRelieverNotSet):
		BadRequest(w, "A reliever must be assigned before requesting leave", nil)
	case errors.Is(err, leave.ErrAlreadyOnLeave):
		BadRequest(w, "You are already on leave", nil)
	case errors.Is(err, leave.ErrPendingRequestExists):
		BadRequest(w, "You already have a pending leave request", nil)
	case errors.Is(err, leave.ErrRelieverOnLeave):
		BadRequest(w, "Your reliever is currently on leave", nil)
	case errors.Is(err, leave.ErrLineManagerOnLeave):
		BadRequest(w, "Your line manager is currently on leave", nil)
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotReviewedByManager):
		BadRequest(w, "Leave request has not been reviewed by the line manager", nil)
	case errors.Is(err, leave.ErrAlreadyPassedStageOne):
		Conflict(w, "Leave request already passed manager review")
	case errors.Is(err, leave.ErrNotRequestReviewer):
		Forbidden(w, "You are not allowed to review this request")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
