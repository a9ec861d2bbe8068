package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"smartai-backend-go/internal/db"
	"smartai-backend-go/internal/llm"
	"smartai-backend-go/internal/models"
)

type chatService struct {
	chatClient    llm.ChatClient
	userRepo      db.UserRepository
	convRepo      db.ConversationRepository
	assistantRepo db.AssistantRepository
	analytics     AnalyticsRecorder
	logger        *zap.Logger
}

// NewChatService creates a new chat service.
func NewChatService(chatClient llm.ChatClient, userRepo db.UserRepository, convRepo db.ConversationRepository, assistantRepo db.AssistantRepository, analytics AnalyticsRecorder, logger *zap.Logger) ChatService {
	return &chatService{
		chatClient:    chatClient,
		userRepo:      userRepo,
		convRepo:      convRepo,
		assistantRepo: assistantRepo,
		analytics:     analytics,
		logger:        logger,
	}
}

// Complete runs one blocking completion. The provider reply is returned
// even when persistence or usage accounting fails; those are logged only.
func (s *chatService) Complete(ctx context.Context, uid string, req *models.ChatCompletionRequest) (*ChatReply, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("%w: messages must not be empty", ErrInvalidArgument)
	}

	model, _ := llm.Resolve(req.Model)
	messages := req.Messages

	if req.AssistantID != "" {
		assistant, err := s.assistantRepo.GetByID(ctx, req.AssistantID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return nil, fmt.Errorf("%w: assistant '%s'", ErrNotFound, req.AssistantID)
			}
			return nil, fmt.Errorf("failed to load assistant: %w", err)
		}
		messages = append([]models.ChatMessage{{
			Role:    models.MessageRoleSystem,
			Content: assistant.SystemPrompt,
		}}, messages...)
		if err := s.assistantRepo.IncrementUsage(ctx, req.AssistantID); err != nil {
			s.logger.Warn("failed to bump assistant usage", zap.String("assistantID", req.AssistantID), zap.Error(err))
		}
	}

	result, err := s.chatClient.Complete(ctx, model.ID, messages)
	if err != nil {
		return nil, err
	}

	if req.ConversationID != "" {
		s.persistExchange(ctx, uid, req, model.ID, result.Content)
	}
	if err := s.userRepo.IncrementUsage(ctx, uid, "messagesUsed", 1); err != nil {
		s.logger.Warn("failed to increment message usage", zap.String("userID", uid), zap.Error(err))
	}
	s.analytics.RecordMessage(ctx, time.Now())

	return &ChatReply{Content: result.Content, Model: model.ID, Usage: result.Usage}, nil
}

// persistExchange appends the user's last message and the assistant reply
// to the conversation document. Failures never fail the request.
func (s *chatService) persistExchange(ctx context.Context, uid string, req *models.ChatCompletionRequest, modelID, reply string) {
	last := req.Messages[len(req.Messages)-1]
	now := time.Now()
	userMsg := models.Message{
		ID:        uuid.NewString(),
		Role:      last.Role,
		Content:   last.Content,
		Timestamp: now,
	}
	assistantMsg := models.Message{
		ID:        uuid.NewString(),
		Role:      models.MessageRoleAssistant,
		Content:   reply,
		Model:     modelID,
		Timestamp: now,
	}
	if err := s.convRepo.AppendMessages(ctx, uid, req.ConversationID, userMsg, assistantMsg); err != nil {
		s.logger.Warn("failed to persist chat exchange",
			zap.String("userID", uid),
			zap.String("conversationID", req.ConversationID),
			zap.Error(err))
	}
}

// Stream opens a streamed completion into the sink. Nothing is persisted
// on this path; the caller keeps its own copy of the exchange.
func (s *chatService) Stream(ctx context.Context, req *models.StreamChatRequest, sink *llm.Sink) error {
	if len(req.Messages) == 0 {
		return fmt.Errorf("%w: messages must not be empty", ErrInvalidArgument)
	}
	model, _ := llm.Resolve(req.Model)
	return s.chatClient.Stream(ctx, model.ID, req.Messages, sink)
}
