package handlers

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/cryptojournal/cryptojournal_backend/internal/middleware"
	"github.com/cryptojournal/cryptojournal_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// uploadHandler handles screenshot and journal image uploads.
type uploadHandler struct {
	uploadDir string
}

func newUploadHandler(cfg *config.Config) *uploadHandler {
	return &uploadHandler{uploadDir: cfg.UploadDir}
}

// registerUploadRoutes registers the upload route.
func registerUploadRoutes(rg *gin.RouterGroup, cfg *config.Config) {
	h := newUploadHandler(cfg)
	rg.POST("/uploads", h.uploadImage)
}

// uploadImage godoc
// @Summary Upload an image
// @Description Accepts a jpg, jpeg, png or webp file and stores it under a
// @Description generated name.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 201 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /uploads [post]
func (h *uploadHandler) uploadImage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := mustUserID(c); !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "image file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unsupported file type " + ext})
		return
	}

	filename := uuid.NewString() + ext
	dst := filepath.Join(h.uploadDir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		logger.Error("Failed to save uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save file"})
		return
	}

	logger.Info("File uploaded", slog.String("filename", filename))
	c.JSON(http.StatusCreated, gin.H{"path": "/uploads/" + filename})
}
