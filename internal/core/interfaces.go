package core

import (
	"context"
	"time"

	"smartai-backend-go/internal/llm"
	"smartai-backend-go/internal/models"
)

// ChatReply is the outcome of a blocking chat completion, ready to return
// to the caller.
type ChatReply struct {
	Content string    `json:"content"`
	Model   string    `json:"model"`
	Usage   llm.Usage `json:"usage"`
}

// Identity carries the verified caller fields extracted from the bearer
// token by the auth middleware.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// UserService manages user profiles and their settings.
type UserService interface {
	// GetOrCreateProfile returns the caller's profile, creating the
	// default free-tier record on first contact.
	GetOrCreateProfile(ctx context.Context, identity Identity) (*models.User, error)
	UpdateSettings(ctx context.Context, uid string, settings map[string]interface{}) (*models.User, error)
}

// ChatService runs chat completions and persists the exchange.
type ChatService interface {
	Complete(ctx context.Context, uid string, req *models.ChatCompletionRequest) (*ChatReply, error)
	// Stream opens a streamed completion into the sink. The caller owns
	// the context and cancels it to stop the producer.
	Stream(ctx context.Context, req *models.StreamChatRequest, sink *llm.Sink) error
}

// ConversationService manages per-user conversation documents.
type ConversationService interface {
	Create(ctx context.Context, uid string, req *models.CreateConversationRequest) (*models.Conversation, error)
	List(ctx context.Context, uid string, limit int) ([]*models.Conversation, error)
	Get(ctx context.Context, uid, conversationID string) (*models.Conversation, error)
	Delete(ctx context.Context, uid, conversationID string) error
}

// ImageService generates images under the caller's quota.
type ImageService interface {
	Generate(ctx context.Context, uid string, req *models.GenerateImageRequest) (*models.GeneratedImage, error)
}

// SpeechService converts between text and audio.
type SpeechService interface {
	TextToSpeech(ctx context.Context, req *models.TextToSpeechRequest) (*llm.SpeechResult, error)
	SpeechToText(ctx context.Context, req *models.SpeechToTextRequest) (string, error)
}

// AssistantService exposes the assistant catalog to regular users.
type AssistantService interface {
	ListActive(ctx context.Context) ([]*models.Assistant, error)
}

// AdminService covers the management surface. Every method verifies the
// caller's admin role against the live user document before acting.
type AdminService interface {
	DashboardStats(ctx context.Context, adminUID string) (*models.DashboardStats, error)
	ListUsers(ctx context.Context, adminUID string, limit int, startAfterID string, filter models.UserListFilter) ([]*models.User, error)
	UpdateUser(ctx context.Context, adminUID, targetUID string, updates map[string]interface{}) (*models.User, error)
	DeleteUser(ctx context.Context, adminUID, targetUID string) error
	ListSubscriptions(ctx context.Context, adminUID string, limit int, startAfterID, status string) ([]*models.Subscription, error)
	CancelSubscription(ctx context.Context, adminUID, subscriptionID, reason string) error
	ListAssistants(ctx context.Context, adminUID string) ([]*models.Assistant, error)
	SaveAssistant(ctx context.Context, adminUID string, req *models.SaveAssistantRequest) (*models.Assistant, error)
	DeleteAssistant(ctx context.Context, adminUID, assistantID string) error
	SystemLogs(ctx context.Context, adminUID string, limit int, level, service string) ([]*models.SystemLog, error)
	Analytics(ctx context.Context, adminUID, dateRange string) (*models.AnalyticsReport, error)
	GetSystemSettings(ctx context.Context, adminUID string) (map[string]interface{}, error)
	UpdateSystemSettings(ctx context.Context, adminUID string, settings map[string]interface{}) (map[string]interface{}, error)
}

// AuditService records admin actions to the audit trail.
type AuditService interface {
	Record(ctx context.Context, action, adminUID, targetType, targetID string, changes map[string]interface{})
}

// AnalyticsRecorder bumps the daily usage counters. Recording is
// best-effort; failures are logged, never surfaced.
type AnalyticsRecorder interface {
	RecordMessage(ctx context.Context, day time.Time)
	RecordImage(ctx context.Context, day time.Time)
}
