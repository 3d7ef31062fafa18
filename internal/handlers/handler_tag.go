package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
	"github.com/cryptojournal/cryptojournal_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// tagHandler handles HTTP requests for tag definitions.
type tagHandler struct {
	tagService portssvc.TagSvcFacade
}

func newTagHandler(ts portssvc.TagSvcFacade) *tagHandler {
	return &tagHandler{tagService: ts}
}

// registerTagRoutes registers routes for tags.
func registerTagRoutes(rg *gin.RouterGroup, tagService portssvc.TagSvcFacade) {
	h := newTagHandler(tagService)

	tags := rg.Group("/tags")
	{
		tags.GET("", h.listTags)
		tags.POST("", h.createTag)
		tags.PUT("/:id", h.updateTag)
		tags.DELETE("/:id", h.deleteTag)
	}
}

// listTags godoc
// @Summary List the user's tags
// @Tags tags
// @Produce json
// @Success 200 {array} dto.TagResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /tags [get]
func (h *tagHandler) listTags(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	tags, err := h.tagService.ListTags(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list tags")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTagResponse(tags))
}

// createTag godoc
// @Summary Create a tag
// @Description Tag names are unique per user, case-insensitively.
// @Tags tags
// @Accept json
// @Produce json
// @Param tag body dto.CreateTagRequest true "Tag details"
// @Success 201 {object} dto.TagResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Tag name already exists"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /tags [post]
func (h *tagHandler) createTag(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTag", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create tag")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTagResponse(tag))
}

// updateTag godoc
// @Summary Update a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param tag body dto.UpdateTagRequest true "Fields to update"
// @Success 200 {object} dto.TagResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Tag name already exists"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /tags/{id} [put]
func (h *tagHandler) updateTag(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTag", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	tag, err := h.tagService.UpdateTag(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update tag")
		return
	}
	c.JSON(http.StatusOK, dto.ToTagResponse(tag))
}

// deleteTag godoc
// @Summary Delete a tag
// @Tags tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /tags/{id} [delete]
func (h *tagHandler) deleteTag(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete tag")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tag deleted"})
}
