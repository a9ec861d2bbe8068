package core

import (
	"context"
	"fmt"

	"smartai-backend-go/internal/db"
	"smartai-backend-go/internal/models"
)

type assistantService struct {
	assistantRepo db.AssistantRepository
}

// NewAssistantService creates a new assistant service.
func NewAssistantService(assistantRepo db.AssistantRepository) AssistantService {
	return &assistantService{assistantRepo: assistantRepo}
}

// ListActive returns the assistants visible to regular users. Inactive
// templates are admin-only.
func (s *assistantService) ListActive(ctx context.Context) ([]*models.Assistant, error) {
	assistants, err := s.assistantRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assistants: %w", err)
	}
	active := make([]*models.Assistant, 0, len(assistants))
	for _, a := range assistants {
		if a.IsActive {
			active = append(active, a)
		}
	}
	return active, nil
}
