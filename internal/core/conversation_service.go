package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"smartai-backend-go/internal/db"
	"smartai-backend-go/internal/llm"
	"smartai-backend-go/internal/models"
)

const defaultConversationLimit = 50

type conversationService struct {
	convRepo db.ConversationRepository
	logger   *zap.Logger
}

// NewConversationService creates a new conversation service.
func NewConversationService(convRepo db.ConversationRepository, logger *zap.Logger) ConversationService {
	return &conversationService{convRepo: convRepo, logger: logger}
}

func (s *conversationService) Create(ctx context.Context, uid string, req *models.CreateConversationRequest) (*models.Conversation, error) {
	model, _ := llm.Resolve(req.Model)
	conv := &models.Conversation{
		Title:       req.Title,
		Model:       model.ID,
		AssistantID: req.AssistantID,
		Messages:    []models.Message{},
	}
	if conv.Title == "" {
		conv.Title = "New Conversation"
	}

	id, err := s.convRepo.Create(ctx, uid, conv)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	conv.ID = id
	return conv, nil
}

func (s *conversationService) List(ctx context.Context, uid string, limit int) ([]*models.Conversation, error) {
	if limit <= 0 {
		limit = defaultConversationLimit
	}
	conversations, err := s.convRepo.List(ctx, uid, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

func (s *conversationService) Get(ctx context.Context, uid, conversationID string) (*models.Conversation, error) {
	conv, err := s.convRepo.GetByID(ctx, uid, conversationID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation '%s'", ErrNotFound, conversationID)
		}
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return conv, nil
}

func (s *conversationService) Delete(ctx context.Context, uid, conversationID string) error {
	if err := s.convRepo.Delete(ctx, uid, conversationID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("%w: conversation '%s'", ErrNotFound, conversationID)
		}
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}
