package http

import (
	"net/http"
	"strconv"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/analytics"
	"github.com/leavedesk/leavedesk-backend-go/internal/handler/http/response"
)

type AnalyticsHandler interface {
	MonthlyBreakdown(w http.ResponseWriter, r *http.Request)
	Overview(w http.ResponseWriter, r *http.Request)
	UsageByType(w http.ResponseWriter, r *http.Request)
}

type AnalyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &AnalyticsHandlerImpl{analyticsService: analyticsService}
}

// MonthlyBreakdown implements AnalyticsHandler.
func (a *AnalyticsHandlerImpl) MonthlyBreakdown(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	breakdown, err := a.analyticsService.MonthlyBreakdown(r.Context(), claims.TenantID, yearParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, breakdown)
}

// Overview implements AnalyticsHandler.
func (a *AnalyticsHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	overview, err := a.analyticsService.Overview(r.Context(), claims.TenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, overview)
}

// UsageByType implements AnalyticsHandler.
func (a *AnalyticsHandlerImpl) UsageByType(w http.ResponseWriter, r *http.Request) {
	claims, err := accessClaims(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	usage, err := a.analyticsService.UsageByType(r.Context(), claims.TenantID, yearParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, usage)
}

// yearParam reads the optional year filter; zero means no year filter.
func yearParam(r *http.Request) int {
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		if y, err := strconv.Atoi(yearStr); err == nil && y > 0 {
			return y
		}
	}
	return 0
}
