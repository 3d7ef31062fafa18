package handlers

import (
	"log/slog"
	"net/http"

	"github.com/cryptojournal/cryptojournal_backend/internal/core/domain"
	portssvc "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
	"github.com/cryptojournal/cryptojournal_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	tradeService   portssvc.TradeSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade, ts portssvc.TradeSvcFacade) *journalHandler {
	return &journalHandler{journalService: js, tradeService: ts}
}

// registerJournalRoutes registers routes for journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, tradeService portssvc.TradeSvcFacade) {
	h := newJournalHandler(journalService, tradeService)

	journals := rg.Group("/journals")
	{
		journals.GET("", h.listEntries)
		journals.POST("", h.createEntry)
		journals.DELETE("", h.deleteAllEntries)
		journals.GET("/:id", h.getEntry)
		journals.PUT("/:id", h.updateEntry)
		journals.DELETE("/:id", h.deleteEntry)
	}
}

// linkedTrade resolves the entry's linked trade, tolerating a trade that has
// since been deleted.
func (h *journalHandler) linkedTrade(c *gin.Context, userID string, entry *domain.JournalEntry) *domain.Trade {
	if entry.LinkedTradeID == "" {
		return nil
	}
	trade, err := h.tradeService.GetTradeByID(c.Request.Context(), userID, entry.LinkedTradeID)
	if err != nil {
		return nil
	}
	return trade
}

// listEntries godoc
// @Summary List the user's journal entries
// @Tags journals
// @Produce json
// @Success 200 {array} dto.JournalResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	entries, err := h.journalService.ListEntries(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list journal entries")
		return
	}

	res := make([]dto.JournalResponse, len(entries))
	for i := range entries {
		res[i] = dto.ToJournalResponse(&entries[i], h.linkedTrade(c, userID, &entries[i]))
	}
	c.JSON(http.StatusOK, res)
}

// createEntry godoc
// @Summary Create a journal entry
// @Tags journals
// @Accept json
// @Produce json
// @Param entry body dto.CreateJournalRequest true "Entry details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(entry, h.linkedTrade(c, userID, entry)))
}

// getEntry godoc
// @Summary Get a journal entry by ID
// @Tags journals
// @Produce json
// @Param id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journals/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry, h.linkedTrade(c, userID, entry)))
}

// updateEntry godoc
// @Summary Update a journal entry
// @Tags journals
// @Accept json
// @Produce json
// @Param id path string true "Journal entry ID"
// @Param entry body dto.UpdateJournalRequest true "Fields to update"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journals/{id} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry, h.linkedTrade(c, userID, entry)))
}

// deleteEntry godoc
// @Summary Delete a journal entry
// @Tags journals
// @Produce json
// @Param id path string true "Journal entry ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journals/{id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.journalService.DeleteEntry(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete journal entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "journal entry deleted"})
}

// deleteAllEntries godoc
// @Summary Delete all of the user's journal entries
// @Tags journals
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /journals [delete]
func (h *journalHandler) deleteAllEntries(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	count, err := h.journalService.DeleteAllEntries(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to delete journal entries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "journal entries deleted", "count": count})
}
