package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
	"github.com/cryptojournal/cryptojournal_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statsHandler handles HTTP requests for trading statistics.
type statsHandler struct {
	statsService portssvc.StatsSvcFacade
}

func newStatsHandler(ss portssvc.StatsSvcFacade) *statsHandler {
	return &statsHandler{statsService: ss}
}

// registerStatsRoutes registers the statistics route.
func registerStatsRoutes(rg *gin.RouterGroup, statsService portssvc.StatsSvcFacade) {
	h := newStatsHandler(statsService)
	rg.GET("/stats", h.getStats)
}

// getStats godoc
// @Summary Get the full statistics snapshot
// @Description Recomputes every metric from the closed-trade set, optionally
// @Description restricted to an inclusive creation-date range.
// @Tags stats
// @Produce json
// @Param startDate query string false "Inclusive start date (RFC 3339 or YYYY-MM-DD)"
// @Param endDate query string false "Inclusive end date (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} dto.StatsResponse
// @Failure 400 {object} ErrorResponse "Unparsable date"
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /stats [get]
func (h *statsHandler) getStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var params dto.StatsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for GetStats", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	stats, err := h.statsService.GetStats(c.Request.Context(), userID, params.StartDate, params.EndDate)
	if err != nil {
		respondServiceError(c, err, "Failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}
