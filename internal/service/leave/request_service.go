package leave

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/employee"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/notifier"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/tenant"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/database"
	"github.com/leavedesk/leavedesk-backend-go/internal/repository/postgresql"
)

// RequestService drives leave requests through the two-stage approval
// workflow. All balance movement happens inside the same transaction as the
// status change, so a crash can never leave days reserved for a request that
// was not recorded or vice versa.
type RequestService struct {
	db          *database.DB
	frontendURL string
	notifier    notifier.Notifier

	leave.LeaveTypeRepository
	leave.LeaveBalanceRepository
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	tenant.TenantRepository
}

func NewRequestService(
	db *database.DB,
	frontendURL string,
	n notifier.Notifier,
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveBalanceRepository leave.LeaveBalanceRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	employeeRepository employee.EmployeeRepository,
	tenantRepository tenant.TenantRepository,
) *RequestService {
	return &RequestService{
		db:                     db,
		frontendURL:            frontendURL,
		notifier:               n,
		LeaveTypeRepository:    leaveTypeRepository,
		LeaveBalanceRepository: leaveBalanceRepository,
		LeaveRequestRepository: leaveRequestRepository,
		EmployeeRepository:     employeeRepository,
		TenantRepository:       tenantRepository,
	}
}

// CreateRequest implements leave.RequestService. Preconditions are checked
// in a fixed order so clients always see the same failure first; the balance
// reservation re-validates inside the transaction regardless.
func (s *RequestService) CreateRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	emp, err := s.EmployeeRepository.GetWithRelations(ctx, req.EmployeeID, req.TenantID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if emp.LineManager == nil {
		return leave.LeaveRequest{}, leave.ErrLineManagerNotSet
	}
	if emp.Reliever == nil {
		return leave.LeaveRequest{}, leave.ErrRelieverNotSet
	}
	if emp.IsOnLeave {
		return leave.LeaveRequest{}, leave.ErrAlreadyOnLeave
	}

	hasPending, err := s.LeaveRequestRepository.HasPending(ctx, emp.ID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if hasPending {
		return leave.LeaveRequest{}, leave.ErrPendingRequestExists
	}

	if emp.Reliever.IsOnLeave {
		return leave.LeaveRequest{}, leave.ErrRelieverOnLeave
	}
	if emp.LineManager.IsOnLeave {
		return leave.LeaveRequest{}, leave.ErrLineManagerOnLeave
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID, req.TenantID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	startDate, resumptionDate := req.Dates()
	lineManagerName := emp.LineManager.FullName()
	relieverName := emp.Reliever.FullName()

	request := leave.LeaveRequest{
		TenantID:         req.TenantID,
		EmployeeID:       emp.ID,
		LineManagerID:    &emp.LineManager.ID,
		RelieverID:       &emp.Reliever.ID,
		LeaveTypeID:      leaveType.ID,
		StartDate:        startDate,
		ResumptionDate:   resumptionDate,
		Duration:         req.Duration,
		Reason:           req.Reason,
		DocumentURL:      req.DocumentURL,
		LineManagerName:  &lineManagerName,
		LineManagerEmail: &emp.LineManager.Email,
		RelieverName:     &relieverName,
		RelieverEmail:    &emp.Reliever.Email,
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context, tx pgx.Tx) error {
		// Lazily create the ledger row from the type default the first time
		// an employee draws on this type.
		balanceBefore := leaveType.DefaultBalance
		if balance, err := s.LeaveBalanceRepository.Get(txCtx, emp.ID, leaveType.ID); err == nil {
			balanceBefore = balance.Balance
		} else {
			if err != leave.ErrBalanceNotFound {
				return fmt.Errorf("failed to get leave balance: %w", err)
			}
			if _, err := s.LeaveBalanceRepository.Insert(txCtx, leave.LeaveBalance{
				TenantID:    req.TenantID,
				EmployeeID:  emp.ID,
				LeaveTypeID: leaveType.ID,
				Balance:     leaveType.DefaultBalance,
			}); err != nil {
				return fmt.Errorf("failed to create leave balance: %w", err)
			}
		}

		if err := s.LeaveBalanceRepository.Reserve(txCtx, emp.ID, leaveType.ID, req.Duration); err != nil {
			return err
		}

		// Summary snapshot at creation time; final approval refreshes it
		// from the ledger when the request concludes.
		request.BalanceBeforeLeave = balanceBefore
		request.RemainingDays = balanceBefore - req.Duration

		created, err := s.LeaveRequestRepository.Create(txCtx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		request = created

		if err := s.EmployeeRepository.SetOnLeave(txCtx, emp.ID, true); err != nil {
			return fmt.Errorf("failed to flag employee as on leave: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.notify(ctx, notifier.EventRequestCreated, request, &emp, req.Reason)
	return request, nil
}

// ReviewByLineManager implements leave.RequestService. Approval here only
// records the first sign-off: the status stays pending until the tenant
// admin concludes the request.
func (s *RequestService) ReviewByLineManager(ctx context.Context, req leave.ReviewLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	reviewer, err := s.EmployeeRepository.GetByID(ctx, req.ReviewerID, req.TenantID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get reviewer: %w", err)
	}

	var request leave.LeaveRequest
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context, tx pgx.Tx) error {
		request, err = s.LeaveRequestRepository.GetByIDForUpdate(txCtx, req.RequestID, req.TenantID)
		if err != nil {
			return err
		}

		if request.IsTerminal() {
			return leave.ErrAlreadyProcessed
		}
		if request.PassedLineManagerStage() {
			return leave.ErrAlreadyPassedStageOne
		}

		isRecordedManager := request.LineManagerID != nil && *request.LineManagerID == reviewer.ID
		if !isRecordedManager && !reviewer.IsAdmin {
			return leave.ErrNotRequestReviewer
		}

		if req.Status == leave.LeaveRequestStatusRejected {
			return s.rejectLocked(txCtx, &request, req.ReviewerID, req.Reason)
		}

		approvalCount := leave.StageLineManager
		update := leave.UpdateLeaveRequestParams{
			ID:            request.ID,
			ApprovedBy:    &req.ReviewerID,
			ApprovalCount: &approvalCount,
		}
		if req.Reason != "" {
			update.ApprovalReason = &req.Reason
		}
		if err := s.LeaveRequestRepository.Update(txCtx, update); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		request.ApprovedBy = &req.ReviewerID
		request.ApprovalCount = approvalCount
		if req.Reason != "" {
			request.ApprovalReason = &req.Reason
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	kind := notifier.EventRequestApprovedStage1
	if req.Status == leave.LeaveRequestStatusRejected {
		kind = notifier.EventRequestRejectedStage1
	}
	s.notify(ctx, kind, request, nil, req.Reason)
	return request, nil
}

// ReviewByTenantAdmin implements leave.RequestService. This is the second
// and final stage; approval snapshots the balance figures onto the history
// row at the moment of the decision.
func (s *RequestService) ReviewByTenantAdmin(ctx context.Context, req leave.ReviewLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	reviewer, err := s.EmployeeRepository.GetByID(ctx, req.ReviewerID, req.TenantID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get reviewer: %w", err)
	}
	if !reviewer.IsAdmin {
		return leave.LeaveRequest{}, leave.ErrNotRequestReviewer
	}

	var request leave.LeaveRequest
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context, tx pgx.Tx) error {
		request, err = s.LeaveRequestRepository.GetByIDForUpdate(txCtx, req.RequestID, req.TenantID)
		if err != nil {
			return err
		}

		if request.IsTerminal() {
			return leave.ErrAlreadyProcessed
		}
		if !request.PassedLineManagerStage() {
			return leave.ErrNotReviewedByManager
		}

		if req.Status == leave.LeaveRequestStatusRejected {
			return s.rejectLocked(txCtx, &request, req.ReviewerID, req.Reason)
		}

		balance, err := s.LeaveBalanceRepository.Get(txCtx, request.EmployeeID, request.LeaveTypeID)
		if err != nil {
			return fmt.Errorf("failed to get leave balance: %w", err)
		}

		status := leave.LeaveRequestStatusApproved
		approvalCount := leave.StageTenantAdmin
		remainingDays := balance.Balance
		balanceBefore := balance.Balance + request.Duration
		update := leave.UpdateLeaveRequestParams{
			ID:                 request.ID,
			Status:             &status,
			ApprovedBy:         &req.ReviewerID,
			ApprovalCount:      &approvalCount,
			RemainingDays:      &remainingDays,
			BalanceBeforeLeave: &balanceBefore,
		}
		if req.Reason != "" {
			update.ApprovalReason = &req.Reason
		}
		if err := s.LeaveRequestRepository.Update(txCtx, update); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		request.Status = status
		request.ApprovedBy = &req.ReviewerID
		request.ApprovalCount = approvalCount
		request.RemainingDays = remainingDays
		request.BalanceBeforeLeave = balanceBefore
		if req.Reason != "" {
			request.ApprovalReason = &req.Reason
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	kind := notifier.EventRequestApprovedStage2
	if req.Status == leave.LeaveRequestStatusRejected {
		kind = notifier.EventRequestRejectedStage2
	}
	s.notify(ctx, kind, request, nil, req.Reason)
	return request, nil
}

// rejectLocked moves the locked request to rejected and hands the reserved
// days back. Callers hold the row lock.
func (s *RequestService) rejectLocked(txCtx context.Context, request *leave.LeaveRequest, reviewerID, reason string) error {
	status := leave.LeaveRequestStatusRejected
	update := leave.UpdateLeaveRequestParams{
		ID:              request.ID,
		Status:          &status,
		RejectedBy:      &reviewerID,
		RejectionReason: &reason,
	}
	if err := s.LeaveRequestRepository.Update(txCtx, update); err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}

	if err := s.LeaveBalanceRepository.Restore(txCtx, request.EmployeeID, request.LeaveTypeID, request.Duration); err != nil {
		return fmt.Errorf("failed to restore leave balance: %w", err)
	}

	if err := s.EmployeeRepository.SetOnLeave(txCtx, request.EmployeeID, false); err != nil {
		return fmt.Errorf("failed to clear on-leave flag: %w", err)
	}

	request.Status = status
	request.RejectedBy = &reviewerID
	request.RejectionReason = &reason
	return nil
}

// GetRequest implements leave.RequestService.
func (s *RequestService) GetRequest(ctx context.Context, id, tenantID string) (leave.LeaveRequest, error) {
	return s.LeaveRequestRepository.GetByID(ctx, id, tenantID)
}

// ListRequests implements leave.RequestService.
func (s *RequestService) ListRequests(ctx context.Context, tenantID string, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.LeaveRequestRepository.List(ctx, tenantID, filter)
}

// DeleteRequest implements leave.RequestService. This removes the history
// row without touching the ledger; reserved days stay spent. Admins who want
// the days back use CancelRequest.
func (s *RequestService) DeleteRequest(ctx context.Context, id, tenantID string) error {
	return s.LeaveRequestRepository.Delete(ctx, id, tenantID)
}

// CancelRequest implements leave.RequestService. It closes a pending request
// as rejected and restores the reserved days.
func (s *RequestService) CancelRequest(ctx context.Context, id, tenantID, cancelledBy string) (leave.LeaveRequest, error) {
	var request leave.LeaveRequest
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context, tx pgx.Tx) error {
		var err error
		request, err = s.LeaveRequestRepository.GetByIDForUpdate(txCtx, id, tenantID)
		if err != nil {
			return err
		}

		if request.IsTerminal() {
			return leave.ErrAlreadyProcessed
		}

		return s.rejectLocked(txCtx, &request, cancelledBy, "cancelled by administrator")
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// notify builds the event payload and hands it to the notifier. Failures to
// assemble the payload are swallowed; delivery never gates the workflow.
func (s *RequestService) notify(ctx context.Context, kind notifier.EventKind, request leave.LeaveRequest, emp *employee.Employee, reason string) {
	if s.notifier == nil {
		return
	}

	event := notifier.Event{
		Kind:           kind,
		TenantID:       request.TenantID,
		RequestID:      request.ID,
		StartDate:      request.StartDate,
		ResumptionDate: request.ResumptionDate,
		Duration:       request.Duration,
		Reason:         reason,
		ReviewURL:      fmt.Sprintf("%s/leave/requests/%s", s.frontendURL, request.ID),
	}

	if request.LineManagerName != nil {
		event.LineManagerName = *request.LineManagerName
	}
	if request.LineManagerEmail != nil {
		event.LineManagerEmail = *request.LineManagerEmail
	}
	if request.RelieverName != nil {
		event.RelieverName = *request.RelieverName
	}
	if request.RelieverEmail != nil {
		event.RelieverEmail = *request.RelieverEmail
	}

	if emp == nil {
		loaded, err := s.EmployeeRepository.GetByID(ctx, request.EmployeeID, request.TenantID)
		if err == nil {
			emp = &loaded
		}
	}
	if emp != nil {
		event.EmployeeName = emp.FullName()
		event.EmployeeEmail = emp.Email
	}

	if request.LeaveTypeName != nil {
		event.LeaveTypeName = *request.LeaveTypeName
	} else if lt, err := s.LeaveTypeRepository.GetByID(ctx, request.LeaveTypeID, request.TenantID); err == nil {
		event.LeaveTypeName = lt.Name
	}

	if t, err := s.TenantRepository.GetByID(ctx, request.TenantID); err == nil {
		event.TenantName = t.Name
		if t.Logo != nil {
			event.TenantLogo = *t.Logo
		}
		if t.Color != nil {
			event.TenantColor = *t.Color
		}
	}

	s.notifier.Notify(ctx, event)
}
