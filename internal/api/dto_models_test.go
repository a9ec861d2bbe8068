package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"smartai-backend-go/internal/core"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid argument", fmt.Errorf("%w: bad field", core.ErrInvalidArgument), http.StatusBadRequest},
		{"permission denied", core.ErrPermissionDenied, http.StatusForbidden},
		{"quota exceeded", fmt.Errorf("%w: limit 10", core.ErrQuotaExceeded), http.StatusTooManyRequests},
		{"user not found", core.ErrUserNotFound, http.StatusNotFound},
		{"resource not found", fmt.Errorf("%w: conversation 'c1'", core.ErrNotFound), http.StatusNotFound},
		{"unknown error", errors.New("provider said something secret"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRespondErrorNeverLeaksInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, errors.New("api key sk-123 rejected by upstream"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "sk-123")
	assert.Contains(t, w.Body.String(), "internal server error")
}
