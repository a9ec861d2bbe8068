package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"smartai-backend-go/internal/models"
)

const assistantsCollection = "assistants"

// firestoreAssistantRepository implements AssistantRepository.
type firestoreAssistantRepository struct {
	client *firestore.Client
}

// NewFirestoreAssistantRepository creates a new instance of firestoreAssistantRepository.
func NewFirestoreAssistantRepository(client *firestore.Client) AssistantRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for AssistantRepository.")
	}
	return &firestoreAssistantRepository{client: client}
}

// GetByID retrieves one assistant template.
func (r *firestoreAssistantRepository) GetByID(ctx context.Context, assistantID string) (*models.Assistant, error) {
	if assistantID == "" {
		return nil, errors.New("assistantID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(assistantsCollection).Doc(assistantID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("assistant '%s' not found: %w", assistantID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get assistant '%s': %w", assistantID, err)
	}
	var assistant models.Assistant
	if err := docSnap.DataTo(&assistant); err != nil {
		return nil, fmt.Errorf("failed to decode assistant '%s': %w", assistantID, err)
	}
	assistant.ID = docSnap.Ref.ID
	return &assistant, nil
}

// List returns all assistant templates, newest first.
func (r *firestoreAssistantRepository) List(ctx context.Context) ([]*models.Assistant, error) {
	iter := r.client.Collection(assistantsCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var assistants []*models.Assistant
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate assistants: %w", err)
		}
		var assistant models.Assistant
		if err := docSnap.DataTo(&assistant); err != nil {
			return nil, fmt.Errorf("failed to decode assistant '%s': %w", docSnap.Ref.ID, err)
		}
		assistant.ID = docSnap.Ref.ID
		assistants = append(assistants, &assistant)
	}
	return assistants, nil
}

// Create adds a new assistant template and returns its generated ID.
func (r *firestoreAssistantRepository) Create(ctx context.Context, assistant *models.Assistant) (string, error) {
	docRef, _, err := r.client.Collection(assistantsCollection).Add(ctx, assistant)
	if err != nil {
		return "", fmt.Errorf("failed to create assistant: %w", err)
	}
	return docRef.ID, nil
}

// Update overwrites an existing assistant template, keeping untouched
// fields (usageCount, createdAt, createdBy) intact via MergeAll.
func (r *firestoreAssistantRepository) Update(ctx context.Context, assistant *models.Assistant) error {
	if assistant.ID == "" {
		return errors.New("assistant ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(assistantsCollection).Doc(assistant.ID).Set(ctx, map[string]interface{}{
		"name":         assistant.Name,
		"description":  assistant.Description,
		"category":     assistant.Category,
		"icon":         assistant.Icon,
		"systemPrompt": assistant.SystemPrompt,
		"model":        assistant.Model,
		"isActive":     assistant.IsActive,
		"updatedBy":    assistant.UpdatedBy,
		"updatedAt":    firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update assistant '%s': %w", assistant.ID, err)
	}
	return nil
}

// Delete removes the assistant template.
func (r *firestoreAssistantRepository) Delete(ctx context.Context, assistantID string) error {
	if assistantID == "" {
		return errors.New("assistantID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(assistantsCollection).Doc(assistantID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete assistant '%s': %w", assistantID, err)
	}
	return nil
}

// IncrementUsage atomically bumps the template's usage counter.
func (r *firestoreAssistantRepository) IncrementUsage(ctx context.Context, assistantID string) error {
	if assistantID == "" {
		return errors.New("assistantID cannot be empty for IncrementUsage operation")
	}
	_, err := r.client.Collection(assistantsCollection).Doc(assistantID).Update(ctx, []firestore.Update{
		{Path: "usageCount", Value: firestore.Increment(1)},
	})
	if err != nil {
		return fmt.Errorf("failed to increment usage for assistant '%s': %w", assistantID, err)
	}
	return nil
}
