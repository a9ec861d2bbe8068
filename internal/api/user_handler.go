package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartai-backend-go/internal/core"
	"smartai-backend-go/internal/middleware"
	"smartai-backend-go/internal/models"
)

// UserHandler serves the caller's own profile and settings.
type UserHandler struct {
	userService core.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService core.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func identityFromContext(c *gin.Context) core.Identity {
	return core.Identity{
		UID:         c.GetString(middleware.ContextUserID),
		Email:       c.GetString(middleware.ContextUserEmail),
		DisplayName: c.GetString(middleware.ContextDisplayName),
		PhotoURL:    c.GetString(middleware.ContextPhotoURL),
	}
}

// GetProfile returns the caller's profile, creating the default free-tier
// record on first contact.
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetOrCreateProfile(c.Request.Context(), identityFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateSettings merges the request keys into the caller's settings blob.
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	user, err := h.userService.UpdateSettings(c.Request.Context(), c.GetString(middleware.ContextUserID), req.Settings)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
