package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/dto"
	"github.com/cryptojournal/cryptojournal_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// featureHandler handles HTTP requests for feature requests and voting.
type featureHandler struct {
	featureService portssvc.FeatureSvcFacade
}

func newFeatureHandler(fs portssvc.FeatureSvcFacade) *featureHandler {
	return &featureHandler{featureService: fs}
}

// registerFeatureRoutes registers routes for feature requests.
func registerFeatureRoutes(rg *gin.RouterGroup, featureService portssvc.FeatureSvcFacade) {
	h := newFeatureHandler(featureService)

	features := rg.Group("/features")
	{
		features.GET("", h.listFeatures)
		features.POST("", h.createFeature)
		features.POST("/:id/vote", h.voteFeature)
		features.DELETE("/:id/vote", h.unvoteFeature)
	}
}

// listFeatures godoc
// @Summary List feature requests
// @Description Ordered by vote count descending. Optionally filtered by
// @Description category.
// @Tags features
// @Produce json
// @Param category query string false "Category filter" Enums(feature, announcement)
// @Success 200 {array} dto.FeatureResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /features [get]
func (h *featureHandler) listFeatures(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	features, err := h.featureService.ListFeatures(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondServiceError(c, err, "Failed to list features")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFeatureResponse(features))
}

// createFeature godoc
// @Summary File a feature request
// @Tags features
// @Accept json
// @Produce json
// @Param feature body dto.CreateFeatureRequest true "Feature details"
// @Success 201 {object} dto.FeatureResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /features [post]
func (h *featureHandler) createFeature(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateFeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFeature", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	feature, err := h.featureService.CreateFeature(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create feature")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFeatureResponse(feature))
}

// voteFeature godoc
// @Summary Vote for a feature
// @Description A user can vote for a feature at most once.
// @Tags features
// @Produce json
// @Param id path string true "Feature ID"
// @Success 200 {object} dto.FeatureResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already voted"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /features/{id}/vote [post]
func (h *featureHandler) voteFeature(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	feature, err := h.featureService.VoteFeature(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to vote")
		return
	}
	c.JSON(http.StatusOK, dto.ToFeatureResponse(feature))
}

// unvoteFeature godoc
// @Summary Remove a vote from a feature
// @Tags features
// @Produce json
// @Param id path string true "Feature ID"
// @Success 200 {object} dto.FeatureResponse
// @Failure 400 {object} ErrorResponse "Not voted"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /features/{id}/vote [delete]
func (h *featureHandler) unvoteFeature(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	feature, err := h.featureService.UnvoteFeature(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to remove vote")
		return
	}
	c.JSON(http.StatusOK, dto.ToFeatureResponse(feature))
}
