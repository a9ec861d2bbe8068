package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartai-backend-go/internal/core"
)

// ErrorResponse is the JSON error envelope used by every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse acknowledges operations with no payload.
type SuccessResponse struct {
	Message string `json:"message"`
}

// respondError maps service-layer sentinel errors onto HTTP status codes.
// Unknown errors become an opaque 500; upstream provider messages are
// never forwarded to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "permission denied"})
	case errors.Is(err, core.ErrQuotaExceeded):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrUserNotFound), errors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
