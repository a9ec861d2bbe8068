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

const conversationsCollection = "conversations"

// firestoreConversationRepository implements ConversationRepository against
// the users/{uid}/conversations subcollection.
type firestoreConversationRepository struct {
	client *firestore.Client
}

// NewFirestoreConversationRepository creates a new instance of firestoreConversationRepository.
func NewFirestoreConversationRepository(client *firestore.Client) ConversationRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ConversationRepository.")
	}
	return &firestoreConversationRepository{client: client}
}

func (r *firestoreConversationRepository) collection(userID string) *firestore.CollectionRef {
	return r.client.Collection(usersCollection).Doc(userID).Collection(conversationsCollection)
}

// Create adds a new conversation document and returns its generated ID.
func (r *firestoreConversationRepository) Create(ctx context.Context, userID string, conv *models.Conversation) (string, error) {
	if userID == "" {
		return "", errors.New("userID cannot be empty for Create operation")
	}
	if conv.Messages == nil {
		conv.Messages = []models.Message{}
	}
	docRef, _, err := r.collection(userID).Add(ctx, conv)
	if err != nil {
		return "", fmt.Errorf("failed to create conversation for user '%s': %w", userID, err)
	}
	return docRef.ID, nil
}

// GetByID retrieves one conversation owned by the given user.
func (r *firestoreConversationRepository) GetByID(ctx context.Context, userID, conversationID string) (*models.Conversation, error) {
	if userID == "" || conversationID == "" {
		return nil, errors.New("userID and conversationID cannot be empty for GetByID operation")
	}
	docSnap, err := r.collection(userID).Doc(conversationID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("conversation '%s' not found: %w", conversationID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get conversation '%s': %w", conversationID, err)
	}

	var conv models.Conversation
	if err := docSnap.DataTo(&conv); err != nil {
		return nil, fmt.Errorf("failed to decode conversation '%s': %w", conversationID, err)
	}
	conv.ID = docSnap.Ref.ID
	return &conv, nil
}

// List returns the user's conversations, most recently updated first.
func (r *firestoreConversationRepository) List(ctx context.Context, userID string, limit int) ([]*models.Conversation, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for List operation")
	}
	iter := r.collection(userID).
		OrderBy("updatedAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var conversations []*models.Conversation
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate conversations for user '%s': %w", userID, err)
		}
		var conv models.Conversation
		if err := docSnap.DataTo(&conv); err != nil {
			return nil, fmt.Errorf("failed to decode conversation '%s': %w", docSnap.Ref.ID, err)
		}
		conv.ID = docSnap.Ref.ID
		conversations = append(conversations, &conv)
	}
	return conversations, nil
}

// Delete removes the conversation document.
func (r *firestoreConversationRepository) Delete(ctx context.Context, userID, conversationID string) error {
	if userID == "" || conversationID == "" {
		return errors.New("userID and conversationID cannot be empty for Delete operation")
	}
	_, err := r.collection(userID).Doc(conversationID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete conversation '%s': %w", conversationID, err)
	}
	return nil
}

// AppendMessages appends messages to the conversation's message array with
// an ArrayUnion and refreshes updatedAt. The array only ever grows here;
// in-place rewrites of streamed placeholders happen client-side.
func (r *firestoreConversationRepository) AppendMessages(ctx context.Context, userID, conversationID string, messages ...models.Message) error {
	if userID == "" || conversationID == "" {
		return errors.New("userID and conversationID cannot be empty for AppendMessages operation")
	}
	if len(messages) == 0 {
		return nil
	}
	union := make([]interface{}, len(messages))
	for i, m := range messages {
		union[i] = m
	}
	_, err := r.collection(userID).Doc(conversationID).Update(ctx, []firestore.Update{
		{Path: "messages", Value: firestore.ArrayUnion(union...)},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("conversation '%s' not found: %w", conversationID, ErrNotFound)
		}
		return fmt.Errorf("failed to append messages to conversation '%s': %w", conversationID, err)
	}
	return nil
}
