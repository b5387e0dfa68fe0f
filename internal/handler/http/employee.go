package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/employee"
	"github.com/leavedesk/leavedesk-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMy(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// Create implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.TenantID = claims.TenantID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := e.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", created)
}

// Get implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	found, err := e.employeeService.GetEmployee(r.Context(), id, claims.TenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// GetMy returns the caller's own profile with relations attached.
func (e *EmployeeHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	found, err := e.employeeService.GetEmployee(r.Context(), claims.EmployeeID, claims.TenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements EmployeeHandler.
func (e *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := employee.ListFilter{}
	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}
	if levelID := r.URL.Query().Get("level_id"); levelID != "" {
		filter.LevelID = &levelID
	}
	filter.Page, filter.Limit = pagination(r)

	employees, total, err := e.employeeService.ListEmployees(r.Context(), claims.TenantID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, employees, response.NewMeta(filter.Page, filter.Limit, total))
}

// Update implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id
	req.TenantID = claims.TenantID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := e.employeeService.UpdateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", updated)
}

// Delete implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	if err := e.employeeService.DeleteEmployee(r.Context(), id, claims.TenantID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}
