package handlers

import (
	"net/http"

	"content-backend/models"
	"content-backend/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GetSummary aggregates daily analytics over an optional article/date range
// GET /api/v1/analytics/summary?article_id=...&date_from=2026-08-01&date_to=2026-08-27
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	var req models.SummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	summary, err := h.analyticsService.GetAnalyticsSummary(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
