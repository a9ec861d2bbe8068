package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"

	"smartai-backend-go/internal/models"
)

const imagesCollection = "images"

// firestoreImageRepository implements ImageRepository against the
// users/{uid}/images subcollection.
type firestoreImageRepository struct {
	client *firestore.Client
}

// NewFirestoreImageRepository creates a new instance of firestoreImageRepository.
func NewFirestoreImageRepository(client *firestore.Client) ImageRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ImageRepository.")
	}
	return &firestoreImageRepository{client: client}
}

// Create stores a generated-image record in the user's library and returns
// its generated document ID.
func (r *firestoreImageRepository) Create(ctx context.Context, userID string, image *models.GeneratedImage) (string, error) {
	if userID == "" {
		return "", errors.New("userID cannot be empty for Create operation")
	}
	docRef, _, err := r.client.Collection(usersCollection).Doc(userID).Collection(imagesCollection).Add(ctx, image)
	if err != nil {
		return "", fmt.Errorf("failed to store image record for user '%s': %w", userID, err)
	}
	return docRef.ID, nil
}
