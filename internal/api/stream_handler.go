package api

import (
	"context"
	"errors"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smartai-backend-go/internal/core"
	"smartai-backend-go/internal/llm"
	"smartai-backend-go/internal/models"
)

const streamBufferSize = 16

// TokenVerifier validates a Firebase ID token. Satisfied by the Firebase
// Auth client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// StreamHandler relays streamed completions over SSE. The endpoint lives
// outside the authenticated group: the ID token travels in the request
// body because EventSource-style clients cannot set headers.
type StreamHandler struct {
	chatService core.ChatService
	verifier    TokenVerifier
	logger      *zap.Logger
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(chatService core.ChatService, verifier TokenVerifier, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{chatService: chatService, verifier: verifier, logger: logger}
}

// StreamChat verifies the in-body token, opens the upstream stream and
// forwards each provider chunk as one SSE data frame. Errors before the
// stream opens are plain JSON; after the first frame the transport is
// committed and failures just terminate the stream.
func (h *StreamHandler) StreamChat(c *gin.Context) {
	var req models.StreamChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	token, err := h.verifier.VerifyIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"})
		return
	}

	sink := llm.NewSink(streamBufferSize)
	if err := h.chatService.Stream(c.Request.Context(), &req, sink); err != nil {
		if errors.Is(err, core.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		h.logger.Error("failed to open chat stream", zap.String("userID", token.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to open stream"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	for chunk := range sink.Chunks() {
		if _, err := c.Writer.Write(formatSSEFrame(chunk.Raw)); err != nil {
			// Client went away; the request context cancellation stops
			// the producer.
			return
		}
		c.Writer.Flush()
	}

	if err := sink.Err(); err != nil {
		h.logger.Warn("chat stream ended with error", zap.String("userID", token.UID), zap.Error(err))
		return
	}
	c.Writer.Write(formatSSEFrame([]byte("[DONE]")))
	c.Writer.Flush()
}

func formatSSEFrame(payload []byte) []byte {
	frame := make([]byte, 0, len(payload)+8)
	frame = append(frame, "data: "...)
	frame = append(frame, payload...)
	frame = append(frame, "\n\n"...)
	return frame
}
