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

const subscriptionsCollection = "subscriptions"

// firestoreSubscriptionRepository implements SubscriptionRepository.
type firestoreSubscriptionRepository struct {
	client *firestore.Client
}

// NewFirestoreSubscriptionRepository creates a new instance of firestoreSubscriptionRepository.
func NewFirestoreSubscriptionRepository(client *firestore.Client) SubscriptionRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for SubscriptionRepository.")
	}
	return &firestoreSubscriptionRepository{client: client}
}

// GetByID retrieves one subscription record.
func (r *firestoreSubscriptionRepository) GetByID(ctx context.Context, subscriptionID string) (*models.Subscription, error) {
	if subscriptionID == "" {
		return nil, errors.New("subscriptionID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(subscriptionsCollection).Doc(subscriptionID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("subscription '%s' not found: %w", subscriptionID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get subscription '%s': %w", subscriptionID, err)
	}
	var sub models.Subscription
	if err := docSnap.DataTo(&sub); err != nil {
		return nil, fmt.Errorf("failed to decode subscription '%s': %w", subscriptionID, err)
	}
	sub.ID = docSnap.Ref.ID
	return &sub, nil
}

// List returns subscriptions ordered by creation time (newest first),
// optionally filtered by status and paginated with a startAfter document ID.
func (r *firestoreSubscriptionRepository) List(ctx context.Context, limit int, startAfterID, statusFilter string) ([]*models.Subscription, error) {
	q := r.client.Collection(subscriptionsCollection).Query.OrderBy("createdAt", firestore.Desc)
	if statusFilter != "" {
		q = q.Where("status", "==", statusFilter)
	}
	if startAfterID != "" {
		startSnap, err := r.client.Collection(subscriptionsCollection).Doc(startAfterID).Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve startAfter document '%s': %w", startAfterID, err)
		}
		createdAt, err := startSnap.DataAt("createdAt")
		if err != nil {
			return nil, fmt.Errorf("startAfter document '%s' has no createdAt: %w", startAfterID, err)
		}
		q = q.StartAfter(createdAt)
	}
	q = q.Limit(limit)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var subs []*models.Subscription
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
		}
		var sub models.Subscription
		if err := docSnap.DataTo(&sub); err != nil {
			return nil, fmt.Errorf("failed to decode subscription '%s': %w", docSnap.Ref.ID, err)
		}
		sub.ID = docSnap.Ref.ID
		subs = append(subs, &sub)
	}
	return subs, nil
}

// ApplyUpdates applies the given field map to the subscription document.
// Update (not a merge-Set) so a missing document fails with NotFound
// instead of being created.
func (r *firestoreSubscriptionRepository) ApplyUpdates(ctx context.Context, subscriptionID string, updates map[string]interface{}) error {
	if subscriptionID == "" {
		return errors.New("subscriptionID cannot be empty for ApplyUpdates operation")
	}
	fields := make([]firestore.Update, 0, len(updates))
	for k, v := range updates {
		fields = append(fields, firestore.Update{Path: k, Value: v})
	}
	_, err := r.client.Collection(subscriptionsCollection).Doc(subscriptionID).Update(ctx, fields)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("subscription '%s' not found: %w", subscriptionID, ErrNotFound)
		}
		return fmt.Errorf("failed to update subscription '%s': %w", subscriptionID, err)
	}
	return nil
}
