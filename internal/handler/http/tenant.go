package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/tenant"
	"github.com/leavedesk/leavedesk-backend-go/internal/handler/http/response"
)

type TenantHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMy(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateMy(w http.ResponseWriter, r *http.Request)
}

type TenantHandlerImpl struct {
	tenantService tenant.TenantService
}

func NewTenantHandler(tenantService tenant.TenantService) TenantHandler {
	return &TenantHandlerImpl{tenantService: tenantService}
}

// Create implements TenantHandler.
func (t *TenantHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req tenant.CreateTenantRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create tenant decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := t.tenantService.CreateTenant(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Tenant created successfully", created)
}

// Get implements TenantHandler.
func (t *TenantHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Tenant ID is required", nil)
		return
	}

	found, err := t.tenantService.GetTenant(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// GetMy returns the caller's own tenant record.
func (t *TenantHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	found, err := t.tenantService.GetTenant(r.Context(), claims.TenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements TenantHandler.
func (t *TenantHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := tenant.ListFilter{}
	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}
	filter.Page, filter.Limit = pagination(r)

	tenants, total, err := t.tenantService.ListTenants(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, tenants, response.NewMeta(filter.Page, filter.Limit, total))
}

// UpdateMy implements TenantHandler.
func (t *TenantHandlerImpl) UpdateMy(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req tenant.UpdateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update tenant decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = claims.TenantID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := t.tenantService.UpdateTenant(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tenant updated successfully", updated)
}

// pagination reads page/limit query parameters; the services clamp the
// values.
func pagination(r *http.Request) (page, limit int) {
	page = 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	limit = 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	return page, limit
}
