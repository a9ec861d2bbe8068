package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartai-backend-go/internal/core"
	"smartai-backend-go/internal/llm"
	"smartai-backend-go/internal/middleware"
	"smartai-backend-go/internal/models"
)

// ChatHandler serves blocking chat completions and the model catalog.
type ChatHandler struct {
	chatService core.ChatService
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chatService core.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Complete runs one blocking chat completion for the caller.
func (h *ChatHandler) Complete(c *gin.Context) {
	var req models.ChatCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	reply, err := h.chatService.Complete(c.Request.Context(), c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// ListModels returns the model catalog shown in the client's picker.
func (h *ChatHandler) ListModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": llm.Models()})
}
