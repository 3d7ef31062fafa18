package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
	"github.com/cryptojournal/cryptojournal_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tradeHandler handles HTTP requests for trades.
type tradeHandler struct {
	tradeService portssvc.TradeSvcFacade
	statsService portssvc.StatsSvcFacade
}

func newTradeHandler(ts portssvc.TradeSvcFacade, ss portssvc.StatsSvcFacade) *tradeHandler {
	return &tradeHandler{tradeService: ts, statsService: ss}
}

// registerTradeRoutes registers routes for trades.
func registerTradeRoutes(rg *gin.RouterGroup, tradeService portssvc.TradeSvcFacade, statsService portssvc.StatsSvcFacade) {
	h := newTradeHandler(tradeService, statsService)

	trades := rg.Group("/trades")
	{
		trades.GET("", h.listTrades)
		trades.POST("", h.createTrade)
		trades.GET("/stats", h.getTradeSummary)
		trades.GET("/:id", h.getTrade)
		trades.PUT("/:id", h.updateTrade)
		trades.DELETE("/:id", h.deleteTrade)
	}
}

// listTrades godoc
// @Summary List the user's trades
// @Tags trades
// @Produce json
// @Success 200 {array} dto.TradeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades [get]
func (h *tradeHandler) listTrades(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	trades, err := h.tradeService.ListTrades(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list trades")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTradeResponse(trades))
}

// createTrade godoc
// @Summary Record a new trade
// @Description Creates a trade in OPEN status. When no account is given the
// @Description primary (or a fresh default) account is used.
// @Tags trades
// @Accept json
// @Produce json
// @Param trade body dto.CreateTradeRequest true "Trade details"
// @Success 201 {object} dto.TradeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades [post]
func (h *tradeHandler) createTrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTrade", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	trade, err := h.tradeService.CreateTrade(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create trade")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTradeResponse(trade))
}

// getTradeSummary godoc
// @Summary Get the dashboard trade counters
// @Tags trades
// @Produce json
// @Success 200 {object} dto.TradeSummaryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades/stats [get]
func (h *tradeHandler) getTradeSummary(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	summary, err := h.statsService.GetTradeSummary(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to compute trade summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getTrade godoc
// @Summary Get a trade by ID
// @Tags trades
// @Produce json
// @Param id path string true "Trade ID"
// @Success 200 {object} dto.TradeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades/{id} [get]
func (h *tradeHandler) getTrade(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	trade, err := h.tradeService.GetTradeByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve trade")
		return
	}
	c.JSON(http.StatusOK, dto.ToTradeResponse(trade))
}

// updateTrade godoc
// @Summary Update a trade
// @Description Partial update. Sending status CLOSED together with an exit
// @Description price closes the trade and computes its realized P&L; sending
// @Description status OPEN on a closed trade reopens it and clears the
// @Description realized fields.
// @Tags trades
// @Accept json
// @Produce json
// @Param id path string true "Trade ID"
// @Param trade body dto.UpdateTradeRequest true "Fields to update"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades/{id} [put]
func (h *tradeHandler) updateTrade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTrade", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	trade, err := h.tradeService.UpdateTrade(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update trade")
		return
	}
	c.JSON(http.StatusOK, dto.ToTradeResponse(trade))
}

// deleteTrade godoc
// @Summary Delete a trade
// @Description Deletes the trade. The owning account's balance is untouched.
// @Tags trades
// @Produce json
// @Param id path string true "Trade ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /trades/{id} [delete]
func (h *tradeHandler) deleteTrade(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.tradeService.DeleteTrade(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete trade")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trade deleted"})
}
