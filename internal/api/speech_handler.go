package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartai-backend-go/internal/core"
	"smartai-backend-go/internal/models"
)

// SpeechHandler serves text-to-speech and speech-to-text.
type SpeechHandler struct {
	speechService core.SpeechService
}

// NewSpeechHandler creates a new speech handler.
func NewSpeechHandler(speechService core.SpeechService) *SpeechHandler {
	return &SpeechHandler{speechService: speechService}
}

// Synthesize converts text to spoken audio.
func (h *SpeechHandler) Synthesize(c *gin.Context) {
	var req models.TextToSpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	result, err := h.speechService.TextToSpeech(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audioBase64": result.AudioBase64, "format": result.Format})
}

// Transcribe converts recorded audio to text.
func (h *SpeechHandler) Transcribe(c *gin.Context) {
	var req models.SpeechToTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	text, err := h.speechService.SpeechToText(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}
