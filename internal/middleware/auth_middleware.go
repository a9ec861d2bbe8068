package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys populated by AuthMiddleware for downstream handlers.
const (
	ContextUserID      = "userID"
	ContextUserEmail   = "userEmail"
	ContextDisplayName = "userDisplayName"
	ContextPhotoURL    = "userPhotoURL"
)

// AuthMiddleware verifies the Firebase ID token from the Authorization
// header and stores the caller's identity on the request context.
func AuthMiddleware(authClient *auth.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		token, err := authClient.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debug("token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserID, token.UID)
		c.Set(ContextUserEmail, claimString(token, "email"))
		c.Set(ContextDisplayName, claimString(token, "name"))
		c.Set(ContextPhotoURL, claimString(token, "picture"))
		c.Next()
	}
}

func claimString(token *auth.Token, key string) string {
	if v, ok := token.Claims[key].(string); ok {
		return v
	}
	return ""
}
