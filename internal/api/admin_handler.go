package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartai-backend-go/internal/core"
	"smartai-backend-go/internal/middleware"
	"smartai-backend-go/internal/models"
)

// AdminHandler serves the management console. Role checks happen in the
// service layer against the live user document, not the token.
type AdminHandler struct {
	adminService core.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService core.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.DashboardStats(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var filter models.UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query parameters", Details: err.Error()})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	users, err := h.adminService.ListUsers(c.Request.Context(), c.GetString(middleware.ContextUserID), limit, c.Query("startAfter"), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	user, err := h.adminService.UpdateUser(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"), req.Updates)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.adminService.DeleteUser(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "user deleted"})
}

func (h *AdminHandler) ListSubscriptions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	subs, err := h.adminService.ListSubscriptions(c.Request.Context(), c.GetString(middleware.ContextUserID), limit, c.Query("startAfter"), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}

func (h *AdminHandler) CancelSubscription(c *gin.Context) {
	var req models.CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	if err := h.adminService.CancelSubscription(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"), req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "subscription cancelled"})
}

func (h *AdminHandler) ListAssistants(c *gin.Context) {
	assistants, err := h.adminService.ListAssistants(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assistants": assistants})
}

func (h *AdminHandler) SaveAssistant(c *gin.Context) {
	var req models.SaveAssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	assistant, err := h.adminService.SaveAssistant(c.Request.Context(), c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assistant)
}

func (h *AdminHandler) DeleteAssistant(c *gin.Context) {
	if err := h.adminService.DeleteAssistant(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "assistant deleted"})
}

func (h *AdminHandler) SystemLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	logs, err := h.adminService.SystemLogs(c.Request.Context(), c.GetString(middleware.ContextUserID), limit, c.Query("level"), c.Query("service"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func (h *AdminHandler) Analytics(c *gin.Context) {
	report, err := h.adminService.Analytics(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Query("range"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.adminService.GetSystemSettings(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req models.UpdateSystemSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	settings, err := h.adminService.UpdateSystemSettings(c.Request.Context(), c.GetString(middleware.ContextUserID), req.Settings)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
