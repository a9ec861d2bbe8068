package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartai-backend-go/internal/core"
)

// AssistantHandler serves the assistant catalog to regular users.
type AssistantHandler struct {
	assistantService core.AssistantService
}

// NewAssistantHandler creates a new assistant handler.
func NewAssistantHandler(assistantService core.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// List returns the active assistants.
func (h *AssistantHandler) List(c *gin.Context) {
	assistants, err := h.assistantService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assistants": assistants})
}
