package api

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smartai-backend-go/internal/core"
	"smartai-backend-go/internal/middleware"
)

// RouterConfig bundles everything the router needs.
type RouterConfig struct {
	GinMode    string
	ClientURL  string
	AuthClient *auth.Client
	Logger     *zap.Logger

	UserService         core.UserService
	ChatService         core.ChatService
	ConversationService core.ConversationService
	ImageService        core.ImageService
	SpeechService       core.SpeechService
	AssistantService    core.AssistantService
	AdminService        core.AdminService
}

// NewRouter builds the Gin engine with all middleware and routes wired.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(middleware.RequestLogger(cfg.Logger))
	router.Use(middleware.CORSMiddleware(cfg.ClientURL))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	userHandler := NewUserHandler(cfg.UserService)
	chatHandler := NewChatHandler(cfg.ChatService)
	convHandler := NewConversationHandler(cfg.ConversationService)
	imageHandler := NewImageHandler(cfg.ImageService)
	speechHandler := NewSpeechHandler(cfg.SpeechService)
	assistantHandler := NewAssistantHandler(cfg.AssistantService)
	adminHandler := NewAdminHandler(cfg.AdminService)
	streamHandler := NewStreamHandler(cfg.ChatService, cfg.AuthClient, cfg.Logger)

	// The streaming relay authenticates via an in-body token, so it sits
	// outside the bearer-authenticated group.
	router.POST("/api/stream/chat", streamHandler.StreamChat)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(cfg.AuthClient, cfg.Logger))
	{
		v1.GET("/users/me", userHandler.GetProfile)
		v1.PUT("/users/me/settings", userHandler.UpdateSettings)

		v1.POST("/chat/completions", chatHandler.Complete)
		v1.GET("/models", chatHandler.ListModels)

		v1.POST("/conversations", convHandler.Create)
		v1.GET("/conversations", convHandler.List)
		v1.GET("/conversations/:id", convHandler.Get)
		v1.DELETE("/conversations/:id", convHandler.Delete)

		v1.POST("/images/generate", imageHandler.Generate)

		v1.POST("/speech/synthesize", speechHandler.Synthesize)
		v1.POST("/speech/transcribe", speechHandler.Transcribe)

		v1.GET("/assistants", assistantHandler.List)

		admin := v1.Group("/admin")
		{
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/users", adminHandler.ListUsers)
			admin.PUT("/users/:id", adminHandler.UpdateUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
			admin.GET("/subscriptions", adminHandler.ListSubscriptions)
			admin.POST("/subscriptions/:id/cancel", adminHandler.CancelSubscription)
			admin.GET("/assistants", adminHandler.ListAssistants)
			admin.POST("/assistants", adminHandler.SaveAssistant)
			admin.DELETE("/assistants/:id", adminHandler.DeleteAssistant)
			admin.GET("/logs", adminHandler.SystemLogs)
			admin.GET("/analytics", adminHandler.Analytics)
			admin.GET("/settings", adminHandler.GetSettings)
			admin.PUT("/settings", adminHandler.UpdateSettings)
		}
	}

	return router
}
