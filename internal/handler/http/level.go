package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/level"
	"github.com/leavedesk/leavedesk-backend-go/internal/handler/http/response"
)

type LevelHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
}

type LevelHandlerImpl struct {
	levelService level.LevelService
}

func NewLevelHandler(levelService level.LevelService) LevelHandler {
	return &LevelHandlerImpl{levelService: levelService}
}

// Create implements LevelHandler.
func (l *LevelHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req level.CreateLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create level decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := l.levelService.AddLevel(r.Context(), claims.TenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Level created successfully", created)
}

// Get implements LevelHandler.
func (l *LevelHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Level ID is required", nil)
		return
	}

	found, err := l.levelService.GetLevel(r.Context(), id, claims.TenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements LevelHandler.
func (l *LevelHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := level.ListFilter{}
	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}
	filter.Page, filter.Limit = pagination(r)

	levels, total, err := l.levelService.ListLevels(r.Context(), claims.TenantID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, levels, response.NewMeta(filter.Page, filter.Limit, total))
}

// Update implements LevelHandler.
func (l *LevelHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Level ID is required", nil)
		return
	}

	var req level.UpdateLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update level decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := l.levelService.UpdateLevel(r.Context(), claims.TenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Level updated successfully", updated)
}

// Delete implements LevelHandler.
func (l *LevelHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Level ID is required", nil)
		return
	}

	if err := l.levelService.DeleteLevel(r.Context(), id, claims.TenantID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Level deleted successfully", nil)
}

// Assign implements LevelHandler.
func (l *LevelHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req level.AssignLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Assign level decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.TenantID = claims.TenantID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := l.levelService.AssignLevel(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Level assigned successfully", nil)
}
