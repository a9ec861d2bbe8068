package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartai-backend-go/internal/core"
	"smartai-backend-go/internal/middleware"
	"smartai-backend-go/internal/models"
)

// ConversationHandler serves the caller's conversation history.
type ConversationHandler struct {
	convService core.ConversationService
}

// NewConversationHandler creates a new conversation handler.
func NewConversationHandler(convService core.ConversationService) *ConversationHandler {
	return &ConversationHandler{convService: convService}
}

func (h *ConversationHandler) Create(c *gin.Context) {
	var req models.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	conv, err := h.convService.Create(c.Request.Context(), c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, conv)
}

func (h *ConversationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	conversations, err := h.convService.List(c.Request.Context(), c.GetString(middleware.ContextUserID), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

func (h *ConversationHandler) Get(c *gin.Context) {
	conv, err := h.convService.Get(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

func (h *ConversationHandler) Delete(c *gin.Context) {
	if err := h.convService.Delete(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "conversation deleted"})
}
