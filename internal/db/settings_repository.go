package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	configCollection  = "config"
	systemSettingsDoc = "system"
)

// firestoreSettingsRepository implements SettingsRepository against the
// single config/system document.
type firestoreSettingsRepository struct {
	client *firestore.Client
}

// NewFirestoreSettingsRepository creates a new instance of firestoreSettingsRepository.
func NewFirestoreSettingsRepository(client *firestore.Client) SettingsRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for SettingsRepository.")
	}
	return &firestoreSettingsRepository{client: client}
}

// Get returns the system settings map. A missing document yields an empty
// map, not an error.
func (r *firestoreSettingsRepository) Get(ctx context.Context) (map[string]interface{}, error) {
	docSnap, err := r.client.Collection(configCollection).Doc(systemSettingsDoc).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return map[string]interface{}{}, nil
		}
		return nil, fmt.Errorf("failed to get system settings: %w", err)
	}
	return docSnap.Data(), nil
}

// Merge folds the given settings into the document, stamping updatedAt and
// updatedBy.
func (r *firestoreSettingsRepository) Merge(ctx context.Context, settings map[string]interface{}, updatedBy string) error {
	merged := make(map[string]interface{}, len(settings)+2)
	for k, v := range settings {
		merged[k] = v
	}
	merged["updatedAt"] = firestore.ServerTimestamp
	merged["updatedBy"] = updatedBy

	_, err := r.client.Collection(configCollection).Doc(systemSettingsDoc).Set(ctx, merged, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update system settings: %w", err)
	}
	return nil
}
