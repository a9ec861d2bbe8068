package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartai-backend-go/internal/core"
	"smartai-backend-go/internal/middleware"
	"smartai-backend-go/internal/models"
)

// ImageHandler serves image generation.
type ImageHandler struct {
	imageService core.ImageService
}

// NewImageHandler creates a new image handler.
func NewImageHandler(imageService core.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// Generate creates one image under the caller's quota.
func (h *ImageHandler) Generate(c *gin.Context) {
	var req models.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	image, err := h.imageService.Generate(c.Request.Context(), c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, image)
}
