package db

import (
	"context"
	"time"

	"smartai-backend-go/internal/models"
)

// UserRepository defines the interface for user document storage operations.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// ApplyUpdates applies the given field map to an existing user
	// document. Callers are responsible for allowlisting the fields.
	ApplyUpdates(ctx context.Context, userID string, updates map[string]interface{}) error
	Delete(ctx context.Context, userID string) error
	// IncrementUsage atomically bumps a numeric counter field
	// (e.g. messagesUsed, imagesGenerated).
	IncrementUsage(ctx context.Context, userID, field string, delta int64) error
	List(ctx context.Context, limit int, startAfterID string, filter models.UserListFilter) ([]*models.User, error)
	Count(ctx context.Context) (int, error)
	CountActiveSince(ctx context.Context, since time.Time) (int, error)
	CountByPlan(ctx context.Context, plan string) (int, error)
	ListRecent(ctx context.Context, limit int) ([]*models.User, error)
}

// ConversationRepository stores per-user conversation documents under
// users/{uid}/conversations.
type ConversationRepository interface {
	Create(ctx context.Context, userID string, conv *models.Conversation) (string, error)
	GetByID(ctx context.Context, userID, conversationID string) (*models.Conversation, error)
	List(ctx context.Context, userID string, limit int) ([]*models.Conversation, error)
	Delete(ctx context.Context, userID, conversationID string) error
	// AppendMessages appends the given messages to the conversation's
	// message array and refreshes its updatedAt timestamp.
	AppendMessages(ctx context.Context, userID, conversationID string, messages ...models.Message) error
}

// ImageRepository stores records of generated images under
// users/{uid}/images.
type ImageRepository interface {
	Create(ctx context.Context, userID string, image *models.GeneratedImage) (string, error)
}

// AssistantRepository stores admin-managed assistant templates.
type AssistantRepository interface {
	GetByID(ctx context.Context, assistantID string) (*models.Assistant, error)
	List(ctx context.Context) ([]*models.Assistant, error)
	Create(ctx context.Context, assistant *models.Assistant) (string, error)
	Update(ctx context.Context, assistant *models.Assistant) error
	Delete(ctx context.Context, assistantID string) error
	IncrementUsage(ctx context.Context, assistantID string) error
}

// SubscriptionRepository reads and mutates subscription records.
type SubscriptionRepository interface {
	GetByID(ctx context.Context, subscriptionID string) (*models.Subscription, error)
	List(ctx context.Context, limit int, startAfterID, status string) ([]*models.Subscription, error)
	ApplyUpdates(ctx context.Context, subscriptionID string, updates map[string]interface{}) error
}

// AdminLogRepository appends audit entries; the application never reads
// them back outside the admin console listing.
type AdminLogRepository interface {
	Create(ctx context.Context, entry models.AdminLog) error
}

// SystemLogRepository reads runtime log records for the admin console.
type SystemLogRepository interface {
	List(ctx context.Context, limit int, level, service string) ([]*models.SystemLog, error)
}

// AnalyticsRepository reads and bumps per-day usage counters at
// analytics/{date}.
type AnalyticsRepository interface {
	Range(ctx context.Context, start, end time.Time) ([]models.DailyStats, error)
	// IncrementDaily bumps one counter on the document for the given day,
	// creating the document if it does not exist yet.
	IncrementDaily(ctx context.Context, day time.Time, field string, delta int64) error
}

// SettingsRepository reads and merges the config/system document.
type SettingsRepository interface {
	Get(ctx context.Context) (map[string]interface{}, error)
	Merge(ctx context.Context, settings map[string]interface{}, updatedBy string) error
}
