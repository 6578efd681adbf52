package handlers

import (
	"net/http"
	"strconv"
	"time"

	"content-backend/models"
	"content-backend/services"

	"github.com/gin-gonic/gin"
)

type TrendingHandler struct {
	trendService *services.TrendService
}

// NewTrendingHandler creates a new trending handler
func NewTrendingHandler(trendService *services.TrendService) *TrendingHandler {
	return &TrendingHandler{
		trendService: trendService,
	}
}

// GetTrending returns the top published articles by trend score
// GET /api/v1/trending?limit=10
func (h *TrendingHandler) GetTrending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	articles, err := h.trendService.GetTrending(c.Request.Context(), limit)
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.TrendingResponse{
		Articles:    articles,
		Count:       len(articles),
		GeneratedAt: time.Now().UTC(),
	})
}
