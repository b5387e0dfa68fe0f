package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/leavedesk/leavedesk-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	GetMyBalances(w http.ResponseWriter, r *http.Request)
	GetEmployeeBalances(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ReviewByLineManager(w http.ResponseWriter, r *http.Request)
	ReviewByTenantAdmin(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	DeleteRequest(w http.ResponseWriter, r *http.Request)

	DownloadMonthlyReport(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	typeService    leave.TypeService
	balanceService leave.BalanceService
	requestService leave.RequestService
	reportService  leave.ReportService
}

func NewLeaveHandler(
	typeService leave.TypeService,
	balanceService leave.BalanceService,
	requestService leave.RequestService,
	reportService leave.ReportService,
) LeaveHandler {
	return &LeaveHandlerImpl{
		typeService:    typeService,
		balanceService: balanceService,
		requestService: requestService,
		reportService:  reportService,
	}
}

// CreateType implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	leaveType, err := l.typeService.AddLeaveType(r.Context(), claims.TenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created successfully", leaveType)
}

// UpdateType implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave type ID is required", nil)
		return
	}

	var req leave.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	leaveType, err := l.typeService.UpdateLeaveType(r.Context(), claims.TenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated successfully", leaveType)
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := leave.ListLeaveTypeFilter{}
	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}
	filter.Page, filter.Limit = pagination(r)

	leaveTypes, total, err := l.typeService.ListLeaveTypes(r.Context(), claims.TenantID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, leaveTypes, response.NewMeta(filter.Page, filter.Limit, total))
}

// DeleteType implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave type ID is required", nil)
		return
	}

	if err := l.typeService.DeleteLeaveType(r.Context(), id, claims.TenantID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type deleted successfully", nil)
}

// GetMyBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	balances, err := l.balanceService.GetBalances(r.Context(), claims.EmployeeID, claims.TenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// GetEmployeeBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetEmployeeBalances(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	balances, err := l.balanceService.GetBalances(r.Context(), employeeID, claims.TenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	// Identity always comes from the token, never the body.
	req.EmployeeID = claims.EmployeeID
	req.TenantID = claims.TenantID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	leaveRequest, err := l.requestService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created successfully", leaveRequest)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := leave.LeaveRequestFilter{}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if lineManagerID := r.URL.Query().Get("line_manager_id"); lineManagerID != "" {
		filter.LineManagerID = &lineManagerID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}
	filter.Page, filter.Limit = pagination(r)

	requests, total, err := l.requestService.ListRequests(r.Context(), claims.TenantID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests, response.NewMeta(filter.Page, filter.Limit, total))
}

// GetMyRequests lists the caller's own leave history.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := leave.LeaveRequestFilter{EmployeeID: &claims.EmployeeID}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	filter.Page, filter.Limit = pagination(r)

	requests, total, err := l.requestService.ListRequests(r.Context(), claims.TenantID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests, response.NewMeta(filter.Page, filter.Limit, total))
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	leaveRequest, err := l.requestService.GetRequest(r.Context(), id, claims.TenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveRequest)
}

// ReviewByLineManager implements LeaveHandler.
func (l *LeaveHandlerImpl) ReviewByLineManager(w http.ResponseWriter, r *http.Request) {
	l.review(w, r, l.requestService.ReviewByLineManager)
}

// ReviewByTenantAdmin implements LeaveHandler.
func (l *LeaveHandlerImpl) ReviewByTenantAdmin(w http.ResponseWriter, r *http.Request) {
	l.review(w, r, l.requestService.ReviewByTenantAdmin)
}

func (l *LeaveHandlerImpl) review(
	w http.ResponseWriter,
	r *http.Request,
	reviewFn func(ctx context.Context, req leave.ReviewLeaveRequestRequest) (leave.LeaveRequest, error),
) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	var req leave.ReviewLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Review decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = id
	req.TenantID = claims.TenantID
	req.ReviewerID = claims.EmployeeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	leaveRequest, err := reviewFn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request reviewed successfully", leaveRequest)
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	leaveRequest, err := l.requestService.CancelRequest(r.Context(), id, claims.TenantID, claims.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled successfully", leaveRequest)
}

// DeleteRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	if err := l.requestService.DeleteRequest(r.Context(), id, claims.TenantID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted successfully", nil)
}

// DownloadMonthlyReport streams the approved/rejected leave history in the
// requested range as an XLSX attachment.
func (l *LeaveHandlerImpl) DownloadMonthlyReport(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	startDate, err := time.Parse("2006-01-02", r.URL.Query().Get("start_date"))
	if err != nil {
		response.BadRequest(w, "start_date must be a valid date (YYYY-MM-DD)", nil)
		return
	}
	endDate, err := time.Parse("2006-01-02", r.URL.Query().Get("end_date"))
	if err != nil {
		response.BadRequest(w, "end_date must be a valid date (YYYY-MM-DD)", nil)
		return
	}
	if endDate.Before(startDate) {
		response.BadRequest(w, "end_date must not be before start_date", nil)
		return
	}

	report, err := l.reportService.MonthlyReportXLSX(r.Context(), claims.TenantID, startDate, endDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("leave-report-%s-to-%s.xlsx",
		startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report)
}
