package leave

import "errors"

var (
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrLeaveTypeExists      = errors.New("a leave type with this name already exists in this level")
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrBalanceNotFound      = errors.New("leave balance record not found")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")

	// Create preconditions, each a distinct caller-visible failure.
	ErrLineManagerNotSet    = errors.New("please update your line manager")
	ErrRelieverNotSet       = errors.New("please update your reliever")
	ErrAlreadyOnLeave       = errors.New("you are already on leave")
	ErrPendingRequestExists = errors.New("you already have a pending leave request")
	ErrRelieverOnLeave      = errors.New("your reliever is on leave")
	ErrLineManagerOnLeave   = errors.New("your line manager is on leave")

	// Transition guards.
	ErrAlreadyProcessed      = errors.New("leave request has already been processed")
	ErrNotReviewedByManager  = errors.New("this leave request has not been approved by the employee's line manager yet")
	ErrAlreadyPassedStageOne = errors.New("leave request has already been approved by the line manager")
	ErrNotRequestReviewer    = errors.New("you can't update this leave request")
)
