package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"smartai-backend-go/internal/api"
	"smartai-backend-go/internal/config"
	"smartai-backend-go/internal/core"
	"smartai-backend-go/internal/db"
	"smartai-backend-go/internal/llm"
)

func main() {
	// .env is optional; real deployments inject the environment.
	_ = godotenv.Load()

	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var logger *zap.Logger
	if appConfig.GinMode == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	if err := db.InitFirestore(ctx, appConfig); err != nil {
		logger.Fatal("failed to initialize Firebase", zap.Error(err))
	}
	fsClient := db.GetFirestoreClient()
	authClient := db.GetFirebaseAuthClient()
	defer fsClient.Close()

	userRepo := db.NewFirestoreUserRepository(fsClient)
	convRepo := db.NewFirestoreConversationRepository(fsClient)
	imageRepo := db.NewFirestoreImageRepository(fsClient)
	assistantRepo := db.NewFirestoreAssistantRepository(fsClient)
	subRepo := db.NewFirestoreSubscriptionRepository(fsClient)
	adminLogRepo := db.NewFirestoreAdminLogRepository(fsClient)
	systemLogRepo := db.NewFirestoreSystemLogRepository(fsClient)
	analyticsRepo := db.NewFirestoreAnalyticsRepository(fsClient)
	settingsRepo := db.NewFirestoreSettingsRepository(fsClient)

	dispatcher := llm.NewDispatcher(appConfig, logger)
	analytics := core.NewAnalyticsRecorder(analyticsRepo, logger)
	audit := core.NewAuditService(adminLogRepo, logger)

	router := api.NewRouter(api.RouterConfig{
		GinMode:             appConfig.GinMode,
		ClientURL:           appConfig.ClientURL,
		AuthClient:          authClient,
		Logger:              logger,
		UserService:         core.NewUserService(userRepo, logger),
		ChatService:         core.NewChatService(dispatcher, userRepo, convRepo, assistantRepo, analytics, logger),
		ConversationService: core.NewConversationService(convRepo, logger),
		ImageService:        core.NewImageService(dispatcher, userRepo, imageRepo, analytics, logger),
		SpeechService:       core.NewSpeechService(dispatcher),
		AssistantService:    core.NewAssistantService(assistantRepo),
		AdminService: core.NewAdminService(
			userRepo, subRepo, assistantRepo, systemLogRepo,
			analyticsRepo, settingsRepo, authClient, audit, logger,
		),
	})

	server := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // streaming responses stay open
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		logger.Info("server starting", zap.String("port", appConfig.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
