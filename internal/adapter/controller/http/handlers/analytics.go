package handlers

import (
	"net/http"
	"strconv"

	"github.com/secintel/secintel/internal/analytics"
	usecase "github.com/secintel/secintel/internal/usecase/analytics"
)

// AnalyticsHandler handles HTTP requests for the analytics endpoints
type AnalyticsHandler struct {
	service *usecase.Service
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service *usecase.Service) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
	}
}

func intParam(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// GetKPIs handles GET /api/analytics/kpis
func (h *AnalyticsHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.KPISummary(r.Context())
	if err != nil {
		respondError(w, statusFor(err), "Failed to compute KPI summary", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// GetSeverityTrend handles GET /api/analytics/severity-trend
func (h *AnalyticsHandler) GetSeverityTrend(w http.ResponseWriter, r *http.Request) {
	lookback, ok := intParam(r, "limit")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid limit parameter", nil)
		return
	}

	trend, err := h.service.SeverityTrend(r.Context(), lookback)
	if err != nil {
		respondError(w, statusFor(err), "Failed to compute severity trend", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data": trend,
	})
}

// GetTopAttackers handles GET /api/analytics/top-attackers
func (h *AnalyticsHandler) GetTopAttackers(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(r, "limit")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid limit parameter", nil)
		return
	}

	attackers, err := h.service.TopAttackers(r.Context(), limit)
	if err != nil {
		respondError(w, statusFor(err), "Failed to compute top attackers", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data": attackers,
	})
}

func (h *AnalyticsHandler) categoryBreakdown(w http.ResponseWriter, r *http.Request, dimension analytics.Dimension) {
	breakdown, err := h.service.CategoryBreakdown(r.Context(), dimension)
	if err != nil {
		respondError(w, statusFor(err), "Failed to compute category breakdown", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data": breakdown,
	})
}

// GetThreatCategories handles GET /api/analytics/threat-categories
func (h *AnalyticsHandler) GetThreatCategories(w http.ResponseWriter, r *http.Request) {
	h.categoryBreakdown(w, r, analytics.DimensionThreatCategory)
}

// GetEventTypes handles GET /api/analytics/event-types
func (h *AnalyticsHandler) GetEventTypes(w http.ResponseWriter, r *http.Request) {
	h.categoryBreakdown(w, r, analytics.DimensionEventType)
}

// GetGeoDistribution handles GET /api/analytics/geo-distribution
func (h *AnalyticsHandler) GetGeoDistribution(w http.ResponseWriter, r *http.Request) {
	h.categoryBreakdown(w, r, analytics.DimensionGeoCountry)
}

// GetRecentEvents handles GET /api/analytics/recent-events
func (h *AnalyticsHandler) GetRecentEvents(w http.ResponseWriter, r *http.Request) {
	page, ok := intParam(r, "page")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid page parameter", nil)
		return
	}
	pageSize, ok := intParam(r, "page_size")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid page_size parameter", nil)
		return
	}

	params := analytics.PageParams{
		Page:      page,
		PageSize:  pageSize,
		Severity:  r.URL.Query().Get("severity"),
		EventType: r.URL.Query().Get("event_type"),
	}

	result, err := h.service.RecentEvents(r.Context(), params)
	if err != nil {
		respondError(w, statusFor(err), "Failed to retrieve events", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetSeverityDistribution handles GET /api/analytics/severity-distribution
func (h *AnalyticsHandler) GetSeverityDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := h.service.SeverityDistribution(r.Context())
	if err != nil {
		respondError(w, statusFor(err), "Failed to compute severity distribution", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data": dist,
	})
}
